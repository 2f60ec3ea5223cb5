// Package report computes read-only aggregates for the dashboard.
package report

import (
	"context"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/money"
	"spendwise/internal/storage"
)

// NoCategory is shown when there is no top category.
const NoCategory = "N/A"

// Top returns the category with the largest total. totals must be ordered by
// name so that ties go to the alphabetically first category.
func Top(totals []models.CategoryTotal) (models.CategoryTotal, bool) {
	var (
		best  models.CategoryTotal
		found bool
	)
	for _, ct := range totals {
		if !found || ct.Total > best.Total {
			best, found = ct, true
		}
	}
	return best, found
}

// Snapshot is the dashboard summary for one month.
type Snapshot struct {
	MonthStart  time.Time
	TotalSpent  money.Amount
	TotalBudget money.Amount
	// Remaining is budget minus spent and may be negative.
	Remaining       money.Amount
	SpendingChange  money.Change
	RemainingChange money.Change

	TopCategory       string
	TopCategoryTotal  money.Amount
	TopCategoryChange money.Change

	ChartLabels []string
	ChartValues []float64
}

// RemainingDisplay is the remaining budget floored at zero.
func (s *Snapshot) RemainingDisplay() money.Amount {
	return s.Remaining.Floor0()
}

// Service builds reports from the store.
type Service struct {
	db *storage.DB
}

// NewService creates a new Service.
func NewService(db *storage.DB) *Service {
	return &Service{db: db}
}

type monthFigures struct {
	spent  money.Amount
	budget money.Amount
	totals []models.CategoryTotal
}

// monthOf sums the month starting at start. Expenses count when dated before
// spentUntil; budgets always cover the whole month.
func monthOf(ctx context.Context, q *storage.Queries, userID int64, start, spentUntil time.Time) (monthFigures, error) {
	end := NextMonthStart(start)
	var (
		f   monthFigures
		err error
	)
	if f.spent, err = q.SpentBetween(ctx, userID, start, spentUntil); err != nil {
		return f, err
	}
	if f.budget, err = q.BudgetBetween(ctx, userID, start, end); err != nil {
		return f, err
	}
	if f.totals, err = q.CategoryTotalsBetween(ctx, userID, start, spentUntil); err != nil {
		return f, err
	}
	return f, nil
}

// Snapshot summarises the month containing today, from its 1st through today,
// and compares it with the whole month before.
func (s *Service) Snapshot(ctx context.Context, userID int64, today time.Time) (*Snapshot, error) {
	curStart := MonthStart(today)
	prevStart := PreviousMonthStart(today)

	var cur, prev monthFigures
	err := s.db.WithTx(ctx, func(q *storage.Queries) error {
		var err error
		if cur, err = monthOf(ctx, q, userID, curStart, EndOfToday(today)); err != nil {
			return err
		}
		prev, err = monthOf(ctx, q, userID, prevStart, curStart)
		return err
	})
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		MonthStart:     curStart,
		TotalSpent:     cur.spent,
		TotalBudget:    cur.budget,
		Remaining:      cur.budget - cur.spent,
		SpendingChange: money.MonthOverMonth(cur.spent, prev.spent),
		TopCategory:    NoCategory,
		ChartLabels:    make([]string, 0, len(cur.totals)),
		ChartValues:    make([]float64, 0, len(cur.totals)),
	}
	snap.RemainingChange = money.MonthOverMonth(snap.Remaining, prev.budget-prev.spent)

	if top, ok := Top(cur.totals); ok {
		snap.TopCategory = top.Name
		snap.TopCategoryTotal = top.Total
		var prevTotal money.Amount
		for _, ct := range prev.totals {
			if ct.CategoryID == top.CategoryID {
				prevTotal = ct.Total
				break
			}
		}
		snap.TopCategoryChange = money.MonthOverMonth(top.Total, prevTotal)
	}

	for _, ct := range cur.totals {
		snap.ChartLabels = append(snap.ChartLabels, ct.Name)
		snap.ChartValues = append(snap.ChartValues, ct.Total.Float64())
	}
	return snap, nil
}

// CategoryBreakdownAll lists every category with the user's all-time total.
func (s *Service) CategoryBreakdownAll(ctx context.Context, userID int64) ([]models.CategoryTotal, error) {
	return s.db.CategoryTotalsAll(ctx, userID)
}

// CategoryBreakdown lists the categories the user spent in during today's
// month, from its 1st through today.
func (s *Service) CategoryBreakdown(ctx context.Context, userID int64, today time.Time) ([]models.CategoryTotal, error) {
	return s.db.CategoryTotalsBetween(ctx, userID, MonthStart(today), EndOfToday(today))
}
