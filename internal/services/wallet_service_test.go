package services

import (
	"testing"

	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/testutil"
	"github.com/stoicaandrei/monney2/internal/uuid"
)

func TestCreateWallet(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWalletService(db)
		user := testutil.CreateTestUser(t, db)

		w, err := svc.CreateWallet(user.ID, " Checking ", models.CurrencyEUR, models.WalletColorBlue, models.WalletIconBank, 10000)
		testutil.AssertNoError(t, err)
		if w.Name != "Checking" || w.Balance != 10000 || w.Order != 0 {
			t.Errorf("unexpected wallet: %+v", w)
		}

		second, err := svc.CreateWallet(user.ID, "Cash", models.CurrencyEUR, models.WalletColorAmber, models.WalletIconWallet, 0)
		testutil.AssertNoError(t, err)
		if second.Order != 1 {
			t.Errorf("expected order 1, got %d", second.Order)
		}
	})

	t.Run("invalid_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWalletService(db)
		user := testutil.CreateTestUser(t, db)

		cases := []struct {
			name     string
			wallet   string
			currency models.WalletCurrency
			color    models.WalletColor
			icon     models.WalletIcon
		}{
			{"empty_name", "  ", models.CurrencyUSD, models.WalletColorBlue, models.WalletIconBank},
			{"currency", "A", "XYZ", models.WalletColorBlue, models.WalletIconBank},
			{"color", "A", models.CurrencyUSD, "magenta", models.WalletIconBank},
			{"icon", "A", models.CurrencyUSD, models.WalletColorBlue, "rocket"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.CreateWallet(user.ID, tc.wallet, tc.currency, tc.color, tc.icon, 0)
				testutil.AssertAppError(t, err, "INVALID_INPUT")
			})
		}
	})
}

func TestWalletBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewWalletService(db)
	user := testutil.CreateTestUser(t, db)
	wallet := testutil.CreateTestWalletWithAmount(t, db, user.ID, 100)
	empty := testutil.CreateTestWalletWithAmount(t, db, user.ID, 5)
	cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
	testutil.CreateTestTransaction(t, db, user.ID, wallet.ID, cat.ID, -30)

	got, err := svc.GetWalletByID(user.ID, wallet.ID)
	testutil.AssertNoError(t, err)
	if got.Balance != 70 {
		t.Errorf("expected balance 70, got %d", got.Balance)
	}

	wallets, err := svc.ListWallets(user.ID)
	testutil.AssertNoError(t, err)
	if len(wallets) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(wallets))
	}
	balances := map[string]int64{wallets[0].ID: wallets[0].Balance, wallets[1].ID: wallets[1].Balance}
	if balances[wallet.ID] != 70 || balances[empty.ID] != 5 {
		t.Errorf("unexpected balances: %v", balances)
	}
}

func TestUpdateWallet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewWalletService(db)
	user := testutil.CreateTestUser(t, db)
	wallet := testutil.CreateTestWallet(t, db, user.ID)

	name := "Savings"
	icon := models.WalletIconPiggyBank
	updated, err := svc.UpdateWallet(user.ID, wallet.ID, WalletUpdateFields{Name: &name, Icon: &icon, InitialAmount: int64Ptr(42)})
	testutil.AssertNoError(t, err)
	if updated.Name != "Savings" || updated.Icon != icon || updated.Balance != 42 {
		t.Errorf("unexpected wallet: %+v", updated)
	}

	bad := models.WalletColor("neon")
	_, err = svc.UpdateWallet(user.ID, wallet.ID, WalletUpdateFields{Color: &bad})
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	other := testutil.CreateTestUser(t, db)
	_, err = svc.UpdateWallet(other.ID, wallet.ID, WalletUpdateFields{Name: &name})
	testutil.AssertAppError(t, err, "FORBIDDEN")
}

func TestDeleteWallet(t *testing.T) {
	t.Run("empty_wallet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWalletService(db)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)

		testutil.AssertNoError(t, svc.DeleteWallet(user.ID, wallet.ID))
		_, err := svc.GetWalletByID(user.ID, wallet.ID)
		testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")
	})

	t.Run("in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWalletService(db)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		testutil.CreateTestTransaction(t, db, user.ID, wallet.ID, cat.ID, 10)

		testutil.AssertAppError(t, svc.DeleteWallet(user.ID, wallet.ID), "WALLET_IN_USE")
	})
}

func TestReorderWallets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewWalletService(db)
	user := testutil.CreateTestUser(t, db)
	a := testutil.CreateTestWallet(t, db, user.ID)
	b := testutil.CreateTestWallet(t, db, user.ID)
	other := testutil.CreateTestUser(t, db)
	foreign := testutil.CreateTestWallet(t, db, other.ID)

	applied, err := svc.ReorderWallets(user.ID, []string{b.ID, "not-a-uuid", a.ID, foreign.ID, uuid.New()})
	testutil.AssertNoError(t, err)
	if applied != 2 {
		t.Errorf("expected 2 wallets updated, got %d", applied)
	}

	wallets, err := svc.ListWallets(user.ID)
	testutil.AssertNoError(t, err)
	if wallets[0].ID != b.ID || wallets[1].ID != a.ID {
		t.Errorf("expected b before a, got %s, %s", wallets[0].Name, wallets[1].Name)
	}
	if wallets[0].Order != 0 || wallets[1].Order != 2 {
		t.Errorf("expected orders 0 and 2, got %d and %d", wallets[0].Order, wallets[1].Order)
	}

	var untouched models.Wallet
	db.First(&untouched, "id = ?", foreign.ID)
	if untouched.Order != foreign.Order {
		t.Errorf("foreign wallet order changed to %d", untouched.Order)
	}
}
