package models

import "time"

// Transaction represents a single income or expense movement on a wallet.
// Amount is signed: positive for income, negative for expenses.
type Transaction struct {
	Base
	UserID     string    `gorm:"type:uuid;not null;index:idx_transactions_user_date,priority:1" json:"user_id"`
	WalletID   string    `gorm:"type:uuid;not null;index" json:"wallet_id"`
	CategoryID string    `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount     int64     `gorm:"type:bigint;not null" json:"amount"`
	Note       string    `json:"note,omitempty"`
	Date       time.Time `gorm:"not null;index:idx_transactions_user_date,priority:2" json:"date"`

	Tags []Tag `gorm:"many2many:transaction_tags" json:"tags"`
}

// TagIDs returns the ids of the tags attached to the transaction.
func (t *Transaction) TagIDs() []string {
	ids := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}
