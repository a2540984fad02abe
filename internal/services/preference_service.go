package services

import (
	"errors"
	"slices"

	"gorm.io/gorm"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/models"
)

// preferenceService handles per-user preferences.
type preferenceService struct {
	db *gorm.DB
}

// NewPreferenceService creates a new PreferenceServicer.
func NewPreferenceService(db *gorm.DB) PreferenceServicer {
	return &preferenceService{db: db}
}

// GetPreferences returns the user's preferences, or nil if none were saved.
func (s *preferenceService) GetPreferences(userID string) (*models.UserPreference, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var prefs models.UserPreference
	if err := s.db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &prefs, nil
}

// SetDefaultCurrency creates or updates the user's default currency.
func (s *preferenceService) SetDefaultCurrency(userID string, currency models.WalletCurrency) (*models.UserPreference, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if !slices.Contains(models.Currencies, currency) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported currency")
	}

	existing, err := s.GetPreferences(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.db.Model(existing).Update("default_currency", currency).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return existing, nil
	}

	prefs := &models.UserPreference{UserID: userID, DefaultCurrency: currency}
	if err := s.db.Create(prefs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return prefs, nil
}
