package services

import (
	"context"
	"time"

	"github.com/stoicaandrei/monney2/internal/analytics"
	"github.com/stoicaandrei/monney2/internal/categorytree"
	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// WalletUpdateFields holds the optional fields of a wallet update.
// Nil fields are left unchanged.
type WalletUpdateFields struct {
	Name          *string
	Currency      *models.WalletCurrency
	Color         *models.WalletColor
	Icon          *models.WalletIcon
	InitialAmount *int64
}

// WalletServicer defines the contract for wallet-related business logic.
// Returned wallets carry their derived Balance.
type WalletServicer interface {
	CreateWallet(userID, name string, currency models.WalletCurrency, color models.WalletColor, icon models.WalletIcon, initialAmount int64) (*models.Wallet, error)
	ListWallets(userID string) ([]models.Wallet, error)
	GetWalletByID(userID, walletID string) (*models.Wallet, error)
	UpdateWallet(userID, walletID string, fields WalletUpdateFields) (*models.Wallet, error)
	DeleteWallet(userID, walletID string) error
	ReorderWallets(userID string, walletIDs []string) (int, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories(userID string, categoryType models.CategoryType) ([]models.Category, error)
	GetCategoryTree(userID string, categoryType models.CategoryType) ([]*categorytree.Node, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	CreateCategory(userID, name string, categoryType models.CategoryType, color string, parentID *string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, name, color *string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
	ReorderCategories(userID string, categoryType models.CategoryType, updates []categorytree.Placement) (int, error)
}

// TagServicer defines the contract for tag-related business logic.
type TagServicer interface {
	ListTags(userID string) ([]models.Tag, error)
	SearchTags(userID, query string) ([]models.Tag, error)
	CreateTag(userID, name string) (tag *models.Tag, created bool, err error)
	RenameTag(userID, tagID, name string) (*models.Tag, error)
	DeleteTag(userID, tagID string) error
}

// TransactionInput holds the fields of a new transaction. Amount's sign is
// ignored; it is derived from the category type.
type TransactionInput struct {
	WalletID   string
	CategoryID string
	Amount     int64
	Note       string
	Date       time.Time
	TagIDs     []string
}

// TransactionUpdateFields holds the optional fields of a transaction update.
// Nil fields are left unchanged; a non-nil TagIDs replaces the tag set.
type TransactionUpdateFields struct {
	WalletID   *string
	CategoryID *string
	Amount     *int64
	Note       *string
	Date       *time.Time
	TagIDs     *[]string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	WalletID   *string
	CategoryID *string
	TagID      *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	ListTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// DashboardOverview bundles every dashboard payload for one window.
type DashboardOverview struct {
	Stats              *analytics.Stats          `json:"stats"`
	DailyBreakdown     []analytics.DailyTotal    `json:"daily_breakdown"`
	ExpensesByCategory []analytics.CategoryTotal `json:"expenses_by_category"`
	Sankey             analytics.Sankey          `json:"sankey"`
}

// DashboardServicer computes dashboard aggregates over a trailing window of
// days. An empty userID is not an error: it yields nil stats and empty
// collections.
type DashboardServicer interface {
	Stats(ctx context.Context, userID string, days int) (*analytics.Stats, error)
	DailyBreakdown(ctx context.Context, userID string, days int) ([]analytics.DailyTotal, error)
	ExpensesByCategory(ctx context.Context, userID string, days int) ([]analytics.CategoryTotal, error)
	Sankey(ctx context.Context, userID string, days int) (analytics.Sankey, error)
	Overview(ctx context.Context, userID string, days int) (*DashboardOverview, error)
}

// PreferenceServicer defines the contract for per-user preferences.
type PreferenceServicer interface {
	GetPreferences(userID string) (*models.UserPreference, error)
	SetDefaultCurrency(userID string, currency models.WalletCurrency) (*models.UserPreference, error)
}

// HelpServicer records "get help" requests.
type HelpServicer interface {
	CreateHelpMessage(userID *string, name, message string) (*models.HelpMessage, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
