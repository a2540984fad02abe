package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/stoicaandrei/monney2/internal/logger"
	"github.com/stoicaandrei/monney2/internal/models"
)

// auditService appends rows to the audit log.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// encodeChanges renders changes as a JSON object, or "" when there are none.
func encodeChanges(changes map[string]interface{}) (string, error) {
	if len(changes) == 0 {
		return "", nil
	}
	data, err := json.Marshal(changes)
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

// Log records one action. Failures are logged and swallowed; the request
// that triggered the entry has already succeeded. Anonymous actions are
// not recorded.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	log := logger.Get().With("user_id", userID, "action", action, "resource_type", resourceType, "resource_id", resourceID)
	if userID == "" {
		log.Debugw("skipping audit entry without user")
		return
	}

	encoded, err := encodeChanges(changes)
	if err != nil {
		log.Warnw("audit changes not encodable", "error", err)
	}

	entry := models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encoded,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Errorw("audit entry not stored", "error", err)
	}
}
