package services

import (
	"database/sql"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/stoicaandrei/monney2/internal/categorytree"
	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/logger"
	"github.com/stoicaandrei/monney2/internal/metrics"
	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/uuid"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

func categoryOwner(c *models.Category) string { return c.UserID }

// normalizeName is the form in which sibling names are compared.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// siblingsQuery scopes to the categories sharing owner, type and parent.
func siblingsQuery(db *gorm.DB, userID string, categoryType models.CategoryType, parentID *string) *gorm.DB {
	q := db.Model(&models.Category{}).Where("user_id = ? AND type = ?", userID, categoryType)
	if parentID == nil {
		return q.Where("parent_id IS NULL")
	}
	return q.Where("parent_id = ?", *parentID)
}

// checkSiblingName fails with ErrDuplicateCategoryName when name collides
// with a sibling other than excludeID.
func checkSiblingName(db *gorm.DB, userID string, categoryType models.CategoryType, parentID *string, name, excludeID string) error {
	var siblings []models.Category
	if err := siblingsQuery(db, userID, categoryType, parentID).Select("id", "name").Find(&siblings).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	want := normalizeName(name)
	for _, sibling := range siblings {
		if sibling.ID != excludeID && normalizeName(sibling.Name) == want {
			return apperrors.ErrDuplicateCategoryName
		}
	}
	return nil
}

// ListCategories returns the user's categories of one type sorted by order.
func (s *categoryService) ListCategories(userID string, categoryType models.CategoryType) ([]models.Category, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category type")
	}

	categories := []models.Category{}
	if err := s.db.Where("user_id = ? AND type = ?", userID, categoryType).
		Order("sort_order ASC").Order("created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryTree returns the user's categories of one type as a forest.
func (s *categoryService) GetCategoryTree(userID string, categoryType models.CategoryType) ([]*categorytree.Node, error) {
	categories, err := s.ListCategories(userID, categoryType)
	if err != nil {
		return nil, err
	}
	return categorytree.Build(categories), nil
}

// GetCategoryByID retrieves a category owned by the user.
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	return loadOwned(s.db, userID, categoryID, apperrors.ErrCategoryNotFound, categoryOwner)
}

// CreateCategory creates a category at the end of its sibling group.
func (s *categoryService) CreateCategory(userID, name string, categoryType models.CategoryType, color string, parentID *string) (*models.Category, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category type")
	}
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	if parentID != nil {
		var parent models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *parentID, userID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrCategoryNotFound, "parent category not found")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if parent.Type != categoryType {
			return nil, apperrors.ErrCategoryTypeMismatch
		}
	}

	if err := checkSiblingName(s.db, userID, categoryType, parentID, name, ""); err != nil {
		return nil, err
	}

	var maxOrder sql.NullInt64
	if err := siblingsQuery(s.db, userID, categoryType, parentID).
		Select("MAX(sort_order)").Row().Scan(&maxOrder); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	order := 0
	if maxOrder.Valid {
		order = int(maxOrder.Int64) + 1
	}

	category := &models.Category{
		UserID:   userID,
		Name:     name,
		Type:     categoryType,
		Color:    color,
		ParentID: parentID,
		Order:    order,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	metrics.CategoriesCreated.WithLabelValues(string(categoryType), "user").Inc()
	return category, nil
}

// UpdateCategory renames or recolors a category. Its type and parent never
// change here.
func (s *categoryService) UpdateCategory(userID, categoryID string, name, color *string) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
		}
		if err := checkSiblingName(s.db, userID, category.Type, category.ParentID, trimmed, category.ID); err != nil {
			return nil, err
		}
		updates["name"] = trimmed
	}
	if color != nil {
		updates["color"] = *color
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory lifts the category's children to its own parent and then
// soft-deletes it. Transactions keep referencing the deleted id.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var newParent interface{}
		if category.ParentID != nil {
			newParent = *category.ParentID
		}
		if err := tx.Model(&models.Category{}).
			Where("parent_id = ? AND user_id = ?", category.ID, userID).
			Update("parent_id", newParent).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ReorderCategories applies each placement independently and returns how
// many were applied. Entries naming a missing or foreign category, one of
// another type, the category itself as parent, or a parent that is missing,
// foreign or of another type are skipped.
func (s *categoryService) ReorderCategories(userID string, categoryType models.CategoryType, updates []categorytree.Placement) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	if !categoryType.Valid() {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category type")
	}

	applied := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ids := make([]string, 0, len(updates)*2)
		for _, u := range updates {
			if uuid.IsValid(u.ID) {
				ids = append(ids, u.ID)
			}
			if u.ParentID != nil && uuid.IsValid(*u.ParentID) {
				ids = append(ids, *u.ParentID)
			}
		}
		var owned []models.Category
		if len(ids) > 0 {
			if err := tx.Where("id IN ? AND user_id = ? AND type = ?", ids, userID, categoryType).
				Find(&owned).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		valid := make(map[string]bool, len(owned))
		for _, c := range owned {
			valid[c.ID] = true
		}

		for _, u := range updates {
			if !valid[u.ID] {
				continue
			}
			var parent interface{}
			if u.ParentID != nil && *u.ParentID != "" {
				if *u.ParentID == u.ID || !valid[*u.ParentID] {
					continue
				}
				parent = *u.ParentID
			}
			if err := tx.Model(&models.Category{}).Where("id = ?", u.ID).
				Updates(map[string]interface{}{"parent_id": parent, "sort_order": u.Order}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	skipped := len(updates) - applied
	metrics.ReorderEntries.WithLabelValues("applied").Add(float64(applied))
	metrics.ReorderEntries.WithLabelValues("skipped").Add(float64(skipped))
	if skipped > 0 {
		logger.Get().Debugw("category reorder skipped entries",
			"user_id", userID,
			"type", categoryType,
			"applied", applied,
			"skipped", skipped,
		)
	}
	return applied, nil
}
