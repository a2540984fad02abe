package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
)

// requireUser reports ErrUnauthorized when no owner is resolvable.
func requireUser(userID string) error {
	if userID == "" {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// loadOwned fetches the record with the given id and checks it belongs to
// userID. A missing record yields notFound; another owner's record yields
// ErrForbidden.
func loadOwned[T any](db *gorm.DB, userID, id string, notFound *apperrors.AppError, owner func(*T) string) (*T, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var record T
	if err := db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if owner(&record) != userID {
		return nil, apperrors.ErrForbidden
	}
	return &record, nil
}
