package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stoicaandrei/monney2/internal/analytics"
	apperrors "github.com/stoicaandrei/monney2/internal/errors"
	"github.com/stoicaandrei/monney2/internal/services"
)

// DashboardHandler serves the dashboard aggregates. Its routes accept
// anonymous callers, who get null or empty payloads.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	defaultDays      int
}

// NewDashboardHandler creates a new DashboardHandler. defaultDays is the
// window used when the request has no days parameter.
func NewDashboardHandler(dashboardService services.DashboardServicer, defaultDays int) *DashboardHandler {
	if defaultDays <= 0 {
		defaultDays = analytics.DefaultWindowDays
	}
	return &DashboardHandler{dashboardService: dashboardService, defaultDays: defaultDays}
}

func (h *DashboardHandler) windowDays(c *gin.Context) (int, error) {
	v := c.Query("days")
	if v == "" {
		return h.defaultDays, nil
	}
	days, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be an integer")
	}
	return days, nil
}

// GetOverview returns every dashboard payload in one response
// @Summary     Dashboard overview
// @Description Stats, daily breakdown, expenses by category and the Sankey graph for the trailing window
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Window length in days (1-366, default 30)"
// @Success     200 {object} services.DashboardOverview "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Failure     401 {object} ErrorResponse "Invalid token"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	days, err := h.windowDays(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.dashboardService.Overview(c.Request.Context(), optionalUserID(c), days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetStats returns income, expense and balance totals
// @Summary     Dashboard stats
// @Description Totals over the trailing window. stats is null for anonymous callers.
// @Tags        dashboard
// @Produce     json
// @Param       days query int false "Window length in days (1-366, default 30)"
// @Success     200 {object} analytics.Stats "Stats"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Router      /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	days, err := h.windowDays(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), optionalUserID(c), days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetDailyBreakdown returns per-day income and expense volume
// @Summary     Daily breakdown
// @Tags        dashboard
// @Produce     json
// @Param       days query int false "Window length in days (1-366, default 30)"
// @Success     200 {array} analytics.DailyTotal "One entry per day, ascending"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Router      /dashboard/daily [get]
func (h *DashboardHandler) GetDailyBreakdown(c *gin.Context) {
	days, err := h.windowDays(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	daily, err := h.dashboardService.DailyBreakdown(c.Request.Context(), optionalUserID(c), days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": daily})
}

// GetExpensesByCategory returns expense totals per category
// @Summary     Expenses by category
// @Tags        dashboard
// @Produce     json
// @Param       days query int false "Window length in days (1-366, default 30)"
// @Success     200 {array} analytics.CategoryTotal "Totals in first-seen order"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Router      /dashboard/expenses-by-category [get]
func (h *DashboardHandler) GetExpensesByCategory(c *gin.Context) {
	days, err := h.windowDays(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.dashboardService.ExpensesByCategory(c.Request.Context(), optionalUserID(c), days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// GetSankey returns the expense flow graph
// @Summary     Expense flow
// @Description Nodes and links from Total Spending down each expense category's ancestry
// @Tags        dashboard
// @Produce     json
// @Param       days query int false "Window length in days (1-366, default 30)"
// @Success     200 {object} analytics.Sankey "Flow graph"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Router      /dashboard/sankey [get]
func (h *DashboardHandler) GetSankey(c *gin.Context) {
	days, err := h.windowDays(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	graph, err := h.dashboardService.Sankey(c.Request.Context(), optionalUserID(c), days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, graph)
}
