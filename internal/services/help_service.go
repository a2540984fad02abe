package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/logger"
	"github.com/stoicaandrei/monney2/internal/models"
)

type helpService struct {
	db *gorm.DB
}

// NewHelpService creates a new HelpServicer.
func NewHelpService(db *gorm.DB) HelpServicer {
	return &helpService{db: db}
}

// CreateHelpMessage stores a help request. userID is nil for anonymous
// senders.
func (s *helpService) CreateHelpMessage(userID *string, name, message string) (*models.HelpMessage, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	if name == "" || message == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and message are required")
	}
	if userID != nil && *userID == "" {
		userID = nil
	}

	msg := &models.HelpMessage{UserID: userID, Name: name, Message: message}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("help message received", "id", msg.ID, "authenticated", userID != nil)
	return msg, nil
}
