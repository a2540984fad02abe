package models

// UserPreference holds per-user settings.
type UserPreference struct {
	Base
	UserID          string         `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	DefaultCurrency WalletCurrency `gorm:"size:3;not null;default:'USD'" json:"default_currency"`
}
