package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/models"
)

// tagService handles tag-related business logic.
type tagService struct {
	db *gorm.DB
}

// NewTagService creates a new TagServicer.
func NewTagService(db *gorm.DB) TagServicer {
	return &tagService{db: db}
}

func tagOwner(t *models.Tag) string { return t.UserID }

// ListTags returns all of the user's tags sorted by name.
func (s *tagService) ListTags(userID string) ([]models.Tag, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	tags := []models.Tag{}
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tags, nil
}

// SearchTags returns the user's tags whose name contains query, ignoring
// case. An empty query returns every tag.
func (s *tagService) SearchTags(userID, query string) ([]models.Tag, error) {
	tags, err := s.ListTags(userID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return tags, nil
	}

	matches := []models.Tag{}
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag.Name), needle) {
			matches = append(matches, tag)
		}
	}
	return matches, nil
}

// findByName returns the user's tag whose name matches ignoring case, or nil.
func (s *tagService) findByName(userID, name string) (*models.Tag, error) {
	tags, err := s.ListTags(userID)
	if err != nil {
		return nil, err
	}
	for i := range tags {
		if strings.EqualFold(tags[i].Name, name) {
			return &tags[i], nil
		}
	}
	return nil, nil
}

// CreateTag creates a tag, or returns the existing one when the user already
// has a tag with the same name ignoring case. created reports which.
func (s *tagService) CreateTag(userID, name string) (*models.Tag, bool, error) {
	if err := requireUser(userID); err != nil {
		return nil, false, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "tag name is required")
	}

	existing, err := s.findByName(userID, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	tag := &models.Tag{UserID: userID, Name: name}
	if err := s.db.Create(tag).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tag, true, nil
}

// RenameTag renames a tag. The new name must not match another of the
// user's tags ignoring case.
func (s *tagService) RenameTag(userID, tagID, name string) (*models.Tag, error) {
	tag, err := loadOwned(s.db, userID, tagID, apperrors.ErrTagNotFound, tagOwner)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tag name is required")
	}

	existing, err := s.findByName(userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != tag.ID {
		return nil, apperrors.ErrDuplicateTagName
	}

	if err := s.db.Model(tag).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tag, nil
}

// DeleteTag detaches the tag from every transaction and then deletes it.
// Transactions themselves are untouched.
func (s *tagService) DeleteTag(userID, tagID string) error {
	tag, err := loadOwned(s.db, userID, tagID, apperrors.ErrTagNotFound, tagOwner)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM transaction_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(tag).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
