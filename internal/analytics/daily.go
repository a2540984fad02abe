package analytics

import (
	"slices"
	"strings"
	"time"

	"github.com/stoicaandrei/monney2/internal/models"
)

// DateLayout is the key format of a daily bucket.
const DateLayout = "2006-01-02"

// DailyTotal is the income and expense volume of one calendar day.
type DailyTotal struct {
	Date     string `json:"date"`
	Income   int64  `json:"income"`
	Expenses int64  `json:"expenses"`
}

// DailyBreakdown seeds one zeroed bucket per calendar day in loc for the
// days days ending on now's date, folds txs into the bucket of their local
// date, and returns the buckets in ascending date order. A transaction whose
// date falls outside the seeded days gets a bucket of its own.
func DailyBreakdown(txs []models.Transaction, now time.Time, days int, loc *time.Location) []DailyTotal {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)

	buckets := make(map[string]*DailyTotal, days)
	for k := 0; k < days; k++ {
		day := time.Date(local.Year(), local.Month(), local.Day()-k, 0, 0, 0, 0, loc)
		key := day.Format(DateLayout)
		buckets[key] = &DailyTotal{Date: key}
	}

	for _, tx := range txs {
		key := tx.Date.In(loc).Format(DateLayout)
		b, ok := buckets[key]
		if !ok {
			b = &DailyTotal{Date: key}
			buckets[key] = b
		}
		switch {
		case tx.Amount > 0:
			b.Income += tx.Amount
		case tx.Amount < 0:
			b.Expenses += -tx.Amount
		}
	}

	out := make([]DailyTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b DailyTotal) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}
