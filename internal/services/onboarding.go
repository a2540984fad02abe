package services

import (
	"gorm.io/gorm"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/metrics"
	"github.com/stoicaandrei/monney2/internal/models"
)

// CreateDefaultsForUser seeds the default category forest and tags for a
// newly registered user. Run it inside the transaction that creates the user.
func CreateDefaultsForUser(tx *gorm.DB, userID string) error {
	if err := createDefaultCategories(tx, userID); err != nil {
		return err
	}
	return createDefaultTags(tx, userID)
}

func createDefaultCategories(tx *gorm.DB, userID string) error {
	for _, categoryType := range []models.CategoryType{models.CategoryTypeIncome, models.CategoryTypeExpense} {
		for i, root := range defaultCategories[categoryType] {
			parent := &models.Category{
				UserID: userID,
				Name:   root.Name,
				Type:   categoryType,
				Color:  root.Color,
				Order:  i,
			}
			if err := tx.Create(parent).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			created := metrics.CategoriesCreated.WithLabelValues(string(categoryType), "defaults")
			created.Inc()

			if len(root.Children) == 0 {
				continue
			}
			children := make([]models.Category, len(root.Children))
			for j, child := range root.Children {
				parentID := parent.ID
				children[j] = models.Category{
					UserID:   userID,
					Name:     child.Name,
					Type:     categoryType,
					Color:    child.Color,
					ParentID: &parentID,
					Order:    j,
				}
			}
			if err := tx.Create(&children).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			created.Add(float64(len(children)))
		}
	}
	return nil
}

func createDefaultTags(tx *gorm.DB, userID string) error {
	tags := make([]models.Tag, len(defaultTags))
	for i, name := range defaultTags {
		tags[i] = models.Tag{UserID: userID, Name: name}
	}
	if err := tx.Create(&tags).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
