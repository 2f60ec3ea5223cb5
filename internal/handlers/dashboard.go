package handlers

import (
	"net/http"
	"strconv"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/report"
)

// recentCount is how many expenses the dashboard lists.
const recentCount = 4

// CategoryShare is one row of the month breakdown table.
type CategoryShare struct {
	Name       string
	Total      string
	Percentage float64
}

// DashboardViewModel is the data passed to the dashboard template.
type DashboardViewModel struct {
	Snapshot   *report.Snapshot
	Shares     []CategoryShare
	Lifetime   []models.CategoryTotal
	Recent     []models.Expense
	Categories []models.Category
	AllTime    string
	Today      string

	MonthName      string
	PrevYear       int
	PrevMonth      int
	NextYear       int
	NextMonth      int
	IsCurrentMonth bool
}

// Dashboard renders the monthly summary. Optional year and month query
// parameters select an earlier month; the default is the current one.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	ctx := r.Context()
	now := h.now()

	// The current month runs through today; an earlier month is read up to
	// its last day.
	anchor := monthFromQuery(r, now)
	isCurrentMonth := anchor.Year() == now.Year() && anchor.Month() == now.Month()
	if isCurrentMonth {
		anchor = now
	} else {
		anchor = report.NextMonthStart(anchor).AddDate(0, 0, -1)
	}

	snap, err := h.reports.Snapshot(ctx, user.ID, anchor)
	if err != nil {
		h.serverError(w, r, err, "dashboard snapshot")
		return
	}
	breakdown, err := h.reports.CategoryBreakdown(ctx, user.ID, anchor)
	if err != nil {
		h.serverError(w, r, err, "month breakdown")
		return
	}
	allCategories, err := h.reports.CategoryBreakdownAll(ctx, user.ID)
	if err != nil {
		h.serverError(w, r, err, "all-time breakdown")
		return
	}
	recent, err := h.ledger.RecentExpenses(ctx, user.ID, recentCount)
	if err != nil {
		h.serverError(w, r, err, "recent expenses")
		return
	}
	categories, err := h.ledger.Categories(ctx)
	if err != nil {
		h.serverError(w, r, err, "list categories")
		return
	}
	allTime, err := h.ledger.TotalSpent(ctx, user.ID, 0)
	if err != nil {
		h.serverError(w, r, err, "total spent")
		return
	}

	shares := make([]CategoryShare, 0, len(breakdown))
	for _, ct := range breakdown {
		pct := 0.0
		if snap.TotalSpent > 0 {
			pct = float64(ct.Total) / float64(snap.TotalSpent) * 100
		}
		shares = append(shares, CategoryShare{Name: ct.Name, Total: ct.Total.String(), Percentage: pct})
	}

	prev := report.PreviousMonthStart(snap.MonthStart)
	next := report.NextMonthStart(snap.MonthStart)

	h.render(w, r, http.StatusOK, "dashboard.html", "Dashboard", DashboardViewModel{
		Snapshot:       snap,
		Shares:         shares,
		Lifetime:       allCategories,
		Recent:         recent,
		Categories:     categories,
		AllTime:        allTime.String(),
		Today:          now.Format(models.DateLayout),
		MonthName:      snap.MonthStart.Format("January 2006"),
		PrevYear:       prev.Year(),
		PrevMonth:      int(prev.Month()),
		NextYear:       next.Year(),
		NextMonth:      int(next.Month()),
		IsCurrentMonth: isCurrentMonth,
	})
}

// monthFromQuery returns the first day of the month named by the year and
// month parameters, falling back to now's month for missing or bad values.
func monthFromQuery(r *http.Request, now time.Time) time.Time {
	year := now.Year()
	month := int(now.Month())

	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
