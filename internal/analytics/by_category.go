package analytics

import (
	"github.com/stoicaandrei/monney2/internal/categorytree"
	"github.com/stoicaandrei/monney2/internal/models"
)

// Placeholder display values for a category that no longer resolves.
const (
	UnknownCategoryName  = "Unknown"
	UnknownCategoryColor = "#94a3b8"
)

// CategoryTotal is the expense volume booked on one category.
type CategoryTotal struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Value      int64  `json:"value"`
}

// ExpensesByCategory groups expense transactions by category id and sums
// their magnitudes. Groups appear in the order their category was first
// seen. Names and colors come from ix; ids missing from ix are reported as
// UnknownCategoryName.
func ExpensesByCategory(txs []models.Transaction, ix *categorytree.Index) []CategoryTotal {
	pos := make(map[string]int)
	out := []CategoryTotal{}
	for _, tx := range txs {
		if tx.Amount >= 0 {
			continue
		}
		i, ok := pos[tx.CategoryID]
		if !ok {
			total := CategoryTotal{
				CategoryID: tx.CategoryID,
				Name:       UnknownCategoryName,
				Color:      UnknownCategoryColor,
			}
			if c, found := ix.Get(tx.CategoryID); found {
				total.Name = c.Name
				total.Color = c.Color
			}
			i = len(out)
			pos[tx.CategoryID] = i
			out = append(out, total)
		}
		out[i].Value += -tx.Amount
	}
	return out
}
