package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/stoicaandrei/monney2/internal/analytics"
	"github.com/stoicaandrei/monney2/internal/categorytree"
	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/metrics"
	"github.com/stoicaandrei/monney2/internal/models"
)

// dashboardService loads windowed transactions and hands them to the
// analytics package.
type dashboardService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// NewDashboardService creates a new DashboardServicer. Daily buckets follow
// calendar days in loc. now defaults to time.Now.
func NewDashboardService(db *gorm.DB, loc *time.Location, now func() time.Time) DashboardServicer {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &dashboardService{db: db, loc: loc, now: now}
}

func validateWindow(days int) error {
	if days < 1 || days > analytics.MaxWindowDays {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("days must be between 1 and %d", analytics.MaxWindowDays))
	}
	return nil
}

func observe(view string, start time.Time) {
	metrics.DashboardDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// windowTransactions returns the user's transactions dated within the last
// days*24h. When expensesOnly is set only negative amounts are loaded.
func (s *dashboardService) windowTransactions(ctx context.Context, userID string, now time.Time, days int, expensesOnly bool) ([]models.Transaction, error) {
	q := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, normalizeDate(analytics.WindowStart(now, days)))
	if expensesOnly {
		q = q.Where("amount < 0")
	}

	var txs []models.Transaction
	if err := q.Order("date ASC").Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

func (s *dashboardService) userCategories(ctx context.Context, userID string, categoryType *models.CategoryType) ([]models.Category, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if categoryType != nil {
		q = q.Where("type = ?", *categoryType)
	}

	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// Stats returns income, expense and balance totals, or nil for an anonymous
// caller.
func (s *dashboardService) Stats(ctx context.Context, userID string, days int) (*analytics.Stats, error) {
	if err := validateWindow(days); err != nil {
		return nil, err
	}
	return s.stats(ctx, userID, s.now(), days)
}

// DailyBreakdown returns one bucket per calendar day of the window.
func (s *dashboardService) DailyBreakdown(ctx context.Context, userID string, days int) ([]analytics.DailyTotal, error) {
	if err := validateWindow(days); err != nil {
		return nil, err
	}
	return s.dailyBreakdown(ctx, userID, s.now(), days)
}

// ExpensesByCategory returns expense totals per category.
func (s *dashboardService) ExpensesByCategory(ctx context.Context, userID string, days int) ([]analytics.CategoryTotal, error) {
	if err := validateWindow(days); err != nil {
		return nil, err
	}
	return s.expensesByCategory(ctx, userID, s.now(), days)
}

// Sankey returns the expense flow graph.
func (s *dashboardService) Sankey(ctx context.Context, userID string, days int) (analytics.Sankey, error) {
	if err := validateWindow(days); err != nil {
		return emptySankey(), err
	}
	return s.sankey(ctx, userID, s.now(), days)
}

// Overview computes every dashboard payload concurrently. All four views
// share one reading of the clock, so they cover the same window.
func (s *dashboardService) Overview(ctx context.Context, userID string, days int) (*DashboardOverview, error) {
	if err := validateWindow(days); err != nil {
		return nil, err
	}
	defer observe("overview", time.Now())

	now := s.now()
	var overview DashboardOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overview.Stats, err = s.stats(gctx, userID, now, days)
		return err
	})
	g.Go(func() (err error) {
		overview.DailyBreakdown, err = s.dailyBreakdown(gctx, userID, now, days)
		return err
	})
	g.Go(func() (err error) {
		overview.ExpensesByCategory, err = s.expensesByCategory(gctx, userID, now, days)
		return err
	})
	g.Go(func() (err error) {
		overview.Sankey, err = s.sankey(gctx, userID, now, days)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &overview, nil
}

func emptySankey() analytics.Sankey {
	return analytics.Sankey{Nodes: []analytics.SankeyNode{}, Links: []analytics.SankeyLink{}}
}

func (s *dashboardService) stats(ctx context.Context, userID string, now time.Time, days int) (*analytics.Stats, error) {
	if userID == "" {
		return nil, nil
	}
	defer observe("stats", time.Now())

	txs, err := s.windowTransactions(ctx, userID, now, days, false)
	if err != nil {
		return nil, err
	}
	stats := analytics.ComputeStats(txs)
	return &stats, nil
}

func (s *dashboardService) dailyBreakdown(ctx context.Context, userID string, now time.Time, days int) ([]analytics.DailyTotal, error) {
	if userID == "" {
		return []analytics.DailyTotal{}, nil
	}
	defer observe("daily", time.Now())

	txs, err := s.windowTransactions(ctx, userID, now, days, false)
	if err != nil {
		return nil, err
	}
	return analytics.DailyBreakdown(txs, now, days, s.loc), nil
}

func (s *dashboardService) expensesByCategory(ctx context.Context, userID string, now time.Time, days int) ([]analytics.CategoryTotal, error) {
	if userID == "" {
		return []analytics.CategoryTotal{}, nil
	}
	defer observe("by_category", time.Now())

	txs, err := s.windowTransactions(ctx, userID, now, days, true)
	if err != nil {
		return nil, err
	}
	categories, err := s.userCategories(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return analytics.ExpensesByCategory(txs, categorytree.NewIndex(categories)), nil
}

func (s *dashboardService) sankey(ctx context.Context, userID string, now time.Time, days int) (analytics.Sankey, error) {
	if userID == "" {
		return emptySankey(), nil
	}
	defer observe("sankey", time.Now())

	txs, err := s.windowTransactions(ctx, userID, now, days, true)
	if err != nil {
		return emptySankey(), err
	}
	if len(txs) == 0 {
		return emptySankey(), nil
	}
	expense := models.CategoryTypeExpense
	categories, err := s.userCategories(ctx, userID, &expense)
	if err != nil {
		return emptySankey(), err
	}
	return analytics.BuildSankey(txs, categories), nil
}
