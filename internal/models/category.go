package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// MaxAmount bounds the magnitude of a transaction amount in minor units.
const MaxAmount int64 = 1_000_000_000_000_000

// ValidAmount reports whether amount is non-zero and within MaxAmount.
// Bounding it also keeps SignedAmount away from math.MinInt64, whose
// negation overflows.
func ValidAmount(amount int64) bool {
	return amount != 0 && amount >= -MaxAmount && amount <= MaxAmount
}

// SignedAmount returns amount with the sign implied by the category type:
// negative for expenses, positive for income. The caller's sign is ignored.
func (t CategoryType) SignedAmount(amount int64) int64 {
	if amount < 0 {
		amount = -amount
	}
	if t == CategoryTypeExpense {
		return -amount
	}
	return amount
}

// Category is a node in a user's income or expense category forest.
// The forest is stored flat; ParentID is a plain foreign key into the same
// table and is not guaranteed to be acyclic.
type Category struct {
	Base
	UserID   string       `gorm:"type:uuid;not null;index:idx_categories_user_type,priority:1" json:"user_id"`
	Name     string       `gorm:"not null" json:"name"`
	Type     CategoryType `gorm:"not null;index:idx_categories_user_type,priority:2" json:"type"`
	Color    string       `json:"color"`
	ParentID *string      `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Order    int          `gorm:"column:sort_order;not null;default:0" json:"order"`
}
