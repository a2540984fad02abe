package models

// WalletCurrency is one of the currencies a wallet can be held in.
type WalletCurrency string

const (
	CurrencyUSD WalletCurrency = "USD"
	CurrencyEUR WalletCurrency = "EUR"
	CurrencyGBP WalletCurrency = "GBP"
	CurrencyRON WalletCurrency = "RON"
	CurrencyJPY WalletCurrency = "JPY"
	CurrencyCHF WalletCurrency = "CHF"
)

// Currencies lists every supported wallet currency.
var Currencies = []WalletCurrency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyRON, CurrencyJPY, CurrencyCHF}

// WalletColor is a named color from the wallet palette.
type WalletColor string

const (
	WalletColorEmerald WalletColor = "emerald"
	WalletColorBlue    WalletColor = "blue"
	WalletColorViolet  WalletColor = "violet"
	WalletColorAmber   WalletColor = "amber"
	WalletColorRose    WalletColor = "rose"
	WalletColorCyan    WalletColor = "cyan"
	WalletColorSlate   WalletColor = "slate"
	WalletColorOrange  WalletColor = "orange"
)

// WalletColors lists the wallet palette.
var WalletColors = []WalletColor{
	WalletColorEmerald, WalletColorBlue, WalletColorViolet, WalletColorAmber,
	WalletColorRose, WalletColorCyan, WalletColorSlate, WalletColorOrange,
}

// WalletIcon is the icon shown next to a wallet.
type WalletIcon string

const (
	WalletIconWallet     WalletIcon = "wallet"
	WalletIconBank       WalletIcon = "bank"
	WalletIconCreditCard WalletIcon = "credit-card"
	WalletIconPiggyBank  WalletIcon = "piggy-bank"
	WalletIconSafe       WalletIcon = "safe"
	WalletIconVault      WalletIcon = "vault"
)

// WalletIcons lists the available wallet icons.
var WalletIcons = []WalletIcon{
	WalletIconWallet, WalletIconBank, WalletIconCreditCard,
	WalletIconPiggyBank, WalletIconSafe, WalletIconVault,
}

// Wallet is a place money is kept (bank account, cash, card).
// Balance is derived from InitialAmount and the wallet's transactions on
// every read and is never persisted.
type Wallet struct {
	Base
	UserID        string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string         `gorm:"not null" json:"name"`
	Currency      WalletCurrency `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Color         WalletColor    `gorm:"not null" json:"color"`
	Icon          WalletIcon     `gorm:"not null" json:"icon"`
	InitialAmount int64          `gorm:"type:bigint;not null;default:0" json:"initial_amount"`
	Order         int            `gorm:"column:sort_order;not null;default:0" json:"order"`
	Balance       int64          `gorm:"-" json:"balance"`
}
