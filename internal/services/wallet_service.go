package services

import (
	"database/sql"
	"slices"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/uuid"
)

// walletService handles wallet-related business logic.
type walletService struct {
	db *gorm.DB
}

// NewWalletService creates a new WalletServicer.
func NewWalletService(db *gorm.DB) WalletServicer {
	return &walletService{db: db}
}

func walletOwner(w *models.Wallet) string { return w.UserID }

func validateWalletFields(currency models.WalletCurrency, color models.WalletColor, icon models.WalletIcon) error {
	if !slices.Contains(models.Currencies, currency) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported currency")
	}
	if !slices.Contains(models.WalletColors, color) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported wallet color")
	}
	if !slices.Contains(models.WalletIcons, icon) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported wallet icon")
	}
	return nil
}

// CreateWallet creates a wallet after the user's existing ones.
func (s *walletService) CreateWallet(userID, name string, currency models.WalletCurrency, color models.WalletColor, icon models.WalletIcon, initialAmount int64) (*models.Wallet, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet name is required")
	}
	if err := validateWalletFields(currency, color, icon); err != nil {
		return nil, err
	}

	var maxOrder sql.NullInt64
	if err := s.db.Model(&models.Wallet{}).Where("user_id = ?", userID).
		Select("MAX(sort_order)").Row().Scan(&maxOrder); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	order := 0
	if maxOrder.Valid {
		order = int(maxOrder.Int64) + 1
	}

	wallet := &models.Wallet{
		UserID:        userID,
		Name:          name,
		Currency:      currency,
		Color:         color,
		Icon:          icon,
		InitialAmount: initialAmount,
		Order:         order,
	}
	if err := s.db.Create(wallet).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	wallet.Balance = wallet.InitialAmount

	return wallet, nil
}

// ListWallets returns the user's wallets in display order with balances.
func (s *walletService) ListWallets(userID string) ([]models.Wallet, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	wallets := []models.Wallet{}
	if err := s.db.Where("user_id = ?", userID).
		Order("sort_order ASC").Order("created_at ASC").
		Find(&wallets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.enrichBalances(wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}

// GetWalletByID retrieves a wallet owned by the user, with its balance.
func (s *walletService) GetWalletByID(userID, walletID string) (*models.Wallet, error) {
	wallet, err := loadOwned(s.db, userID, walletID, apperrors.ErrWalletNotFound, walletOwner)
	if err != nil {
		return nil, err
	}

	wallets := []models.Wallet{*wallet}
	if err := s.enrichBalances(wallets); err != nil {
		return nil, err
	}
	return &wallets[0], nil
}

// UpdateWallet applies the non-nil fields.
func (s *walletService) UpdateWallet(userID, walletID string, fields WalletUpdateFields) (*models.Wallet, error) {
	wallet, err := loadOwned(s.db, userID, walletID, apperrors.ErrWalletNotFound, walletOwner)
	if err != nil {
		return nil, err
	}

	currency, color, icon := wallet.Currency, wallet.Color, wallet.Icon
	updates := make(map[string]interface{})
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet name is required")
		}
		updates["name"] = name
	}
	if fields.Currency != nil {
		currency = *fields.Currency
		updates["currency"] = currency
	}
	if fields.Color != nil {
		color = *fields.Color
		updates["color"] = color
	}
	if fields.Icon != nil {
		icon = *fields.Icon
		updates["icon"] = icon
	}
	if fields.InitialAmount != nil {
		updates["initial_amount"] = *fields.InitialAmount
	}
	if err := validateWalletFields(currency, color, icon); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(wallet).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetWalletByID(userID, walletID)
}

// DeleteWallet soft-deletes a wallet that has no transactions.
func (s *walletService) DeleteWallet(userID, walletID string) error {
	wallet, err := loadOwned(s.db, userID, walletID, apperrors.ErrWalletNotFound, walletOwner)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Transaction{}).Where("wallet_id = ?", wallet.ID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrWalletInUse
	}

	if err := s.db.Delete(wallet).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ReorderWallets sets each listed wallet's order to its index in walletIDs.
// Ids that are not the user's wallets are skipped. It returns the number of
// wallets updated.
func (s *walletService) ReorderWallets(userID string, walletIDs []string) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}

	applied := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range walletIDs {
			if !uuid.IsValid(id) {
				continue
			}
			result := tx.Model(&models.Wallet{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("sort_order", i)
			if result.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
			}
			applied += int(result.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// enrichBalances sets Balance = InitialAmount + sum of transaction amounts
// on every wallet in the slice.
func (s *walletService) enrichBalances(wallets []models.Wallet) error {
	if len(wallets) == 0 {
		return nil
	}

	ids := make([]string, len(wallets))
	for i := range wallets {
		ids[i] = wallets[i].ID
	}

	type walletTotal struct {
		WalletID string
		Total    int64
	}
	var totals []walletTotal
	if err := s.db.Model(&models.Transaction{}).
		Select("wallet_id, COALESCE(SUM(amount), 0) AS total").
		Where("wallet_id IN ?", ids).
		Group("wallet_id").
		Scan(&totals).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byWallet := make(map[string]int64, len(totals))
	for _, t := range totals {
		byWallet[t.WalletID] = t.Total
	}
	for i := range wallets {
		wallets[i].Balance = wallets[i].InitialAmount + byWallet[wallets[i].ID]
	}
	return nil
}
