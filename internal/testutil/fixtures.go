package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/stoicaandrei/monney2/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestWallet creates a USD wallet with no initial amount.
func CreateTestWallet(t *testing.T, db *gorm.DB, userID string) *models.Wallet {
	t.Helper()
	return CreateTestWalletWithAmount(t, db, userID, 0)
}

// CreateTestWalletWithAmount creates a USD wallet with the given initial amount.
func CreateTestWalletWithAmount(t *testing.T, db *gorm.DB, userID string, initial int64) *models.Wallet {
	t.Helper()

	wallet := &models.Wallet{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Wallet %d", nextID()),
		Currency:      models.CurrencyUSD,
		Color:         models.WalletColorEmerald,
		Icon:          models.WalletIconWallet,
		InitialAmount: initial,
	}
	if err := db.Create(wallet).Error; err != nil {
		t.Fatalf("failed to create test wallet: %v", err)
	}
	return wallet
}

// CreateTestCategory creates a root category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()
	return CreateTestCategoryWithParent(t, db, userID, categoryType, fmt.Sprintf("Test Category %d", nextID()), nil)
}

// CreateTestCategoryWithParent creates a named category under parentID
// (nil for a root) with order one past its current siblings.
func CreateTestCategoryWithParent(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType, name string, parentID *string) *models.Category {
	t.Helper()

	q := db.Model(&models.Category{}).Where("user_id = ? AND type = ?", userID, categoryType)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	var siblings int64
	if err := q.Count(&siblings).Error; err != nil {
		t.Fatalf("failed to count sibling categories: %v", err)
	}

	category := &models.Category{
		UserID:   userID,
		Name:     name,
		Type:     categoryType,
		Color:    "#64748b",
		ParentID: parentID,
		Order:    int(siblings),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTag creates a tag with a unique name.
func CreateTestTag(t *testing.T, db *gorm.DB, userID string) *models.Tag {
	t.Helper()

	tag := &models.Tag{UserID: userID, Name: fmt.Sprintf("tag-%d", nextID())}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}
	return tag
}

// CreateTestTransaction creates a transaction dated now. amount is stored as
// given; callers pass the signed value matching the category type.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, walletID, categoryID string, amount int64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, userID, walletID, categoryID, amount, time.Now())
}

// CreateTestTransactionAt creates a transaction with the given date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, userID, walletID, categoryID string, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date.UTC().Truncate(time.Millisecond),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
