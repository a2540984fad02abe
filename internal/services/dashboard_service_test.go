package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/stoicaandrei/monney2/internal/analytics"
	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/testutil"
)

var dashboardNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type dashboardFixture struct {
	db        *gorm.DB
	svc       DashboardServicer
	user      *models.User
	food      *models.Category
	groceries *models.Category
}

// setupDashboard seeds, within a 7 day window ending at dashboardNow:
// +5000 salary on Mar 14, -300 groceries on Mar 13, -200 food on Mar 15,
// and one -999 expense on Mar 1 that falls outside the window.
func setupDashboard(t *testing.T) dashboardFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	wallet := testutil.CreateTestWallet(t, db, user.ID)

	salary := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeIncome, "Salary", nil)
	food := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Food", nil)
	groceries := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Groceries", &food.ID)

	at := func(day, hour int) time.Time { return time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC) }
	testutil.CreateTestTransactionAt(t, db, user.ID, wallet.ID, salary.ID, 5000, at(14, 10))
	testutil.CreateTestTransactionAt(t, db, user.ID, wallet.ID, groceries.ID, -300, at(13, 9))
	testutil.CreateTestTransactionAt(t, db, user.ID, wallet.ID, food.ID, -200, at(15, 8))
	testutil.CreateTestTransactionAt(t, db, user.ID, wallet.ID, food.ID, -999, at(1, 8))

	return dashboardFixture{
		db:        db,
		svc:       NewDashboardService(db, time.UTC, func() time.Time { return dashboardNow }),
		user:      user,
		food:      food,
		groceries: groceries,
	}
}

func TestDashboardStats(t *testing.T) {
	f := setupDashboard(t)

	stats, err := f.svc.Stats(context.Background(), f.user.ID, 7)
	testutil.AssertNoError(t, err)

	want := analytics.Stats{Income: 5000, Expenses: 500, Balance: 4500, TransactionCount: 3}
	if *stats != want {
		t.Errorf("expected %+v, got %+v", want, *stats)
	}

	wide, err := f.svc.Stats(context.Background(), f.user.ID, 30)
	testutil.AssertNoError(t, err)
	if wide.Expenses != 1499 || wide.TransactionCount != 4 {
		t.Errorf("expected the 30 day window to include the Mar 1 expense, got %+v", *wide)
	}
}

func TestDashboardDailyBreakdown(t *testing.T) {
	f := setupDashboard(t)

	days, err := f.svc.DailyBreakdown(context.Background(), f.user.ID, 7)
	testutil.AssertNoError(t, err)

	if len(days) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(days))
	}
	if days[0].Date != "2024-03-09" || days[6].Date != "2024-03-15" {
		t.Errorf("unexpected range %s..%s", days[0].Date, days[6].Date)
	}

	byDate := map[string]analytics.DailyTotal{}
	var income, expenses int64
	for _, d := range days {
		byDate[d.Date] = d
		income += d.Income
		expenses += d.Expenses
	}
	if byDate["2024-03-13"].Expenses != 300 || byDate["2024-03-14"].Income != 5000 || byDate["2024-03-15"].Expenses != 200 {
		t.Errorf("unexpected buckets: %+v", days)
	}

	stats, err := f.svc.Stats(context.Background(), f.user.ID, 7)
	testutil.AssertNoError(t, err)
	if income != stats.Income || expenses != stats.Expenses {
		t.Errorf("daily sums %d/%d do not match stats %d/%d", income, expenses, stats.Income, stats.Expenses)
	}
}

func TestDashboardExpensesByCategory(t *testing.T) {
	f := setupDashboard(t)

	totals, err := f.svc.ExpensesByCategory(context.Background(), f.user.ID, 7)
	testutil.AssertNoError(t, err)

	if len(totals) != 2 {
		t.Fatalf("expected 2 groups, got %+v", totals)
	}
	if totals[0].CategoryID != f.groceries.ID || totals[0].Value != 300 || totals[0].Name != "Groceries" {
		t.Errorf("unexpected first group: %+v", totals[0])
	}
	if totals[1].CategoryID != f.food.ID || totals[1].Value != 200 {
		t.Errorf("unexpected second group: %+v", totals[1])
	}

	t.Run("deleted_category_is_unknown", func(t *testing.T) {
		testutil.AssertNoError(t, f.db.Delete(&models.Category{}, "id = ?", f.groceries.ID).Error)

		totals, err := f.svc.ExpensesByCategory(context.Background(), f.user.ID, 7)
		testutil.AssertNoError(t, err)
		if totals[0].Name != analytics.UnknownCategoryName || totals[0].Value != 300 {
			t.Errorf("expected unknown group for deleted category, got %+v", totals[0])
		}
	})
}

func TestDashboardSankey(t *testing.T) {
	f := setupDashboard(t)

	graph, err := f.svc.Sankey(context.Background(), f.user.ID, 7)
	testutil.AssertNoError(t, err)

	wantNodes := []string{analytics.SankeyRoot, "Food", "Food › Groceries"}
	if len(graph.Nodes) != len(wantNodes) {
		t.Fatalf("expected nodes %v, got %+v", wantNodes, graph.Nodes)
	}
	for i, id := range wantNodes {
		if graph.Nodes[i].ID != id {
			t.Errorf("node %d: expected %s, got %s", i, id, graph.Nodes[i].ID)
		}
	}

	wantLinks := []analytics.SankeyLink{
		{Source: analytics.SankeyRoot, Target: "Food", Value: 500},
		{Source: "Food", Target: "Food › Groceries", Value: 300},
	}
	if len(graph.Links) != len(wantLinks) {
		t.Fatalf("expected links %+v, got %+v", wantLinks, graph.Links)
	}
	for i, l := range wantLinks {
		if graph.Links[i] != l {
			t.Errorf("link %d: expected %+v, got %+v", i, l, graph.Links[i])
		}
	}
}

func TestDashboardAnonymous(t *testing.T) {
	f := setupDashboard(t)
	ctx := context.Background()

	stats, err := f.svc.Stats(ctx, "", 7)
	testutil.AssertNoError(t, err)
	if stats != nil {
		t.Errorf("expected nil stats, got %+v", stats)
	}

	days, err := f.svc.DailyBreakdown(ctx, "", 7)
	testutil.AssertNoError(t, err)
	if days == nil || len(days) != 0 {
		t.Errorf("expected empty breakdown, got %+v", days)
	}

	graph, err := f.svc.Sankey(ctx, "", 7)
	testutil.AssertNoError(t, err)
	if graph.Nodes == nil || graph.Links == nil || len(graph.Nodes) != 0 {
		t.Errorf("expected empty graph, got %+v", graph)
	}
}

func TestDashboardInvalidWindow(t *testing.T) {
	f := setupDashboard(t)
	ctx := context.Background()

	for _, days := range []int{0, -1, analytics.MaxWindowDays + 1} {
		_, err := f.svc.Stats(ctx, f.user.ID, days)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = f.svc.Overview(ctx, f.user.ID, days)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	}
}

func TestDashboardOverview(t *testing.T) {
	f := setupDashboard(t)

	overview, err := f.svc.Overview(context.Background(), f.user.ID, 7)
	testutil.AssertNoError(t, err)

	if overview.Stats == nil || overview.Stats.Balance != 4500 {
		t.Errorf("unexpected stats: %+v", overview.Stats)
	}
	if len(overview.DailyBreakdown) != 7 {
		t.Errorf("expected 7 daily buckets, got %d", len(overview.DailyBreakdown))
	}
	if len(overview.ExpensesByCategory) != 2 {
		t.Errorf("expected 2 category groups, got %d", len(overview.ExpensesByCategory))
	}
	if len(overview.Sankey.Links) != 2 {
		t.Errorf("expected 2 sankey links, got %d", len(overview.Sankey.Links))
	}
}

func TestDashboardOverview_SharesOneWindow(t *testing.T) {
	f := setupDashboard(t)

	// Any reading after the first lands a month later, past every seeded row.
	var calls atomic.Int32
	clock := func() time.Time {
		if calls.Add(1) == 1 {
			return dashboardNow
		}
		return dashboardNow.AddDate(0, 1, 0)
	}
	svc := NewDashboardService(f.db, time.UTC, clock)

	overview, err := svc.Overview(context.Background(), f.user.ID, 7)
	testutil.AssertNoError(t, err)

	if n := calls.Load(); n != 1 {
		t.Errorf("expected one clock reading, got %d", n)
	}
	if overview.Stats == nil || overview.Stats.Expenses != 500 {
		t.Fatalf("unexpected stats: %+v", overview.Stats)
	}
	var dailyExpenses int64
	for _, d := range overview.DailyBreakdown {
		dailyExpenses += d.Expenses
	}
	if dailyExpenses != overview.Stats.Expenses {
		t.Errorf("daily expenses %d disagree with stats %d", dailyExpenses, overview.Stats.Expenses)
	}
	if last := overview.DailyBreakdown[len(overview.DailyBreakdown)-1]; last.Date != "2024-03-15" {
		t.Errorf("expected window to end on 2024-03-15, got %s", last.Date)
	}
	if len(overview.Sankey.Links) != 2 {
		t.Errorf("expected 2 sankey links, got %d", len(overview.Sankey.Links))
	}
}

func TestDashboardNoExpenses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewDashboardService(db, time.UTC, func() time.Time { return dashboardNow })

	graph, err := svc.Sankey(context.Background(), user.ID, 30)
	testutil.AssertNoError(t, err)
	if len(graph.Nodes) != 0 || len(graph.Links) != 0 {
		t.Errorf("expected empty graph, got %+v", graph)
	}

	totals, err := svc.ExpensesByCategory(context.Background(), user.ID, 30)
	testutil.AssertNoError(t, err)
	if totals == nil || len(totals) != 0 {
		t.Errorf("expected empty non-nil totals, got %+v", totals)
	}
}
