// Package analytics computes the dashboard aggregates from an already
// windowed slice of transactions. Nothing here touches the database.
package analytics

import (
	"time"

	"github.com/stoicaandrei/monney2/internal/models"
)

// DefaultWindowDays is the trailing window used when a caller does not ask
// for one.
const DefaultWindowDays = 30

// MaxWindowDays bounds the trailing window a caller may request.
const MaxWindowDays = 366

// WindowStart returns the inclusive lower bound of a trailing window of
// days*24h ending at now.
func WindowStart(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// Stats holds the totals over a window. Expenses is a positive magnitude.
type Stats struct {
	Income           int64 `json:"income"`
	Expenses         int64 `json:"expenses"`
	Balance          int64 `json:"balance"`
	TransactionCount int   `json:"transaction_count"`
}

// ComputeStats sums positive amounts into Income and the magnitude of
// negative amounts into Expenses.
func ComputeStats(txs []models.Transaction) Stats {
	var s Stats
	for _, tx := range txs {
		switch {
		case tx.Amount > 0:
			s.Income += tx.Amount
		case tx.Amount < 0:
			s.Expenses += -tx.Amount
		}
	}
	s.Balance = s.Income - s.Expenses
	s.TransactionCount = len(txs)
	return s
}
