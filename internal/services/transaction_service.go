package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/metrics"
	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

func transactionOwner(t *models.Transaction) string { return t.UserID }

var errInvalidAmount = apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero and at most 10^15 minor units")

// normalizeDate stores instants in UTC at millisecond precision.
func normalizeDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// resolveTags loads the user's tags for ids, deduplicated. Any id that is
// not one of the user's tags fails with ErrTagNotFound.
func resolveTags(db *gorm.DB, userID string, ids []string) ([]models.Tag, error) {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return []models.Tag{}, nil
	}

	var tags []models.Tag
	if err := db.Where("id IN ? AND user_id = ?", unique, userID).Find(&tags).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(tags) != len(unique) {
		return nil, apperrors.ErrTagNotFound
	}
	return tags, nil
}

// CreateTransaction records a transaction. The stored amount is negative for
// expense categories and positive for income categories.
func (s *transactionService) CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if !models.ValidAmount(in.Amount) {
		return nil, errInvalidAmount
	}
	if in.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	if _, err := loadOwned(s.db, userID, in.WalletID, apperrors.ErrWalletNotFound, walletOwner); err != nil {
		return nil, err
	}
	category, err := loadOwned(s.db, userID, in.CategoryID, apperrors.ErrCategoryNotFound, categoryOwner)
	if err != nil {
		return nil, err
	}
	tags, err := resolveTags(s.db, userID, in.TagIDs)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:     userID,
		WalletID:   in.WalletID,
		CategoryID: category.ID,
		Amount:     category.Type.SignedAmount(in.Amount),
		Note:       strings.TrimSpace(in.Note),
		Date:       normalizeDate(in.Date),
		Tags:       tags,
	}
	if err := s.db.Omit("Tags.*").Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	metrics.TransactionsWritten.WithLabelValues("create").Inc()
	return transaction, nil
}

// GetTransactionByID retrieves a transaction owned by the user with its tags.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	return loadOwned(s.db.Preload("Tags"), userID, transactionID, apperrors.ErrTransactionNotFound, transactionOwner)
}

// ListTransactions returns a page of the user's transactions, newest first.
func (s *transactionService) ListTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}).Where("user_id = ?", userID), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Tags").
		Order("date DESC").Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", normalizeDate(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", normalizeDate(*f.ToDate))
	}
	if f.WalletID != nil {
		q = q.Where("wallet_id = ?", *f.WalletID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.TagID != nil {
		q = q.Where("id IN (?)", q.Session(&gorm.Session{NewDB: true}).
			Table("transaction_tags").Select("transaction_id").Where("tag_id = ?", *f.TagID))
	}
	return q
}

// UpdateTransaction applies the non-nil fields. The amount's sign is
// re-derived from the (possibly new) category on every update.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if fields.Amount != nil && !models.ValidAmount(*fields.Amount) {
		return nil, errInvalidAmount
	}

	if fields.WalletID != nil {
		if _, err := loadOwned(s.db, userID, *fields.WalletID, apperrors.ErrWalletNotFound, walletOwner); err != nil {
			return nil, err
		}
	}

	categoryID := transaction.CategoryID
	if fields.CategoryID != nil {
		categoryID = *fields.CategoryID
	}
	category, err := loadOwned(s.db, userID, categoryID, apperrors.ErrCategoryNotFound, categoryOwner)
	if err != nil {
		// The current category may have been deleted since; only a newly
		// requested category has to resolve.
		if fields.CategoryID != nil || !errors.Is(err, apperrors.ErrCategoryNotFound) {
			return nil, err
		}
		category = nil
	}

	var tags []models.Tag
	if fields.TagIDs != nil {
		if tags, err = resolveTags(s.db, userID, *fields.TagIDs); err != nil {
			return nil, err
		}
	}

	amount := transaction.Amount
	if fields.Amount != nil {
		amount = *fields.Amount
	}

	updates := map[string]interface{}{}
	if category != nil {
		updates["category_id"] = category.ID
		updates["amount"] = category.Type.SignedAmount(amount)
	} else if fields.Amount != nil {
		// Keep the sign the transaction already has.
		if transaction.Amount < 0 {
			updates["amount"] = models.CategoryTypeExpense.SignedAmount(amount)
		} else {
			updates["amount"] = models.CategoryTypeIncome.SignedAmount(amount)
		}
	}
	if fields.WalletID != nil {
		updates["wallet_id"] = *fields.WalletID
	}
	if fields.Note != nil {
		updates["note"] = strings.TrimSpace(*fields.Note)
	}
	if fields.Date != nil {
		if fields.Date.IsZero() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
		}
		updates["date"] = normalizeDate(*fields.Date)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Transaction{}).Where("id = ?", transaction.ID).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if fields.TagIDs != nil {
			assoc := tx.Model(transaction).Association("Tags")
			var err error
			if len(tags) == 0 {
				err = assoc.Clear()
			} else {
				err = assoc.Replace(tags)
			}
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TransactionsWritten.WithLabelValues("update").Inc()
	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction detaches the transaction's tags and soft-deletes it.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(transaction).Association("Tags").Clear(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.TransactionsWritten.WithLabelValues("delete").Inc()
	return nil
}
