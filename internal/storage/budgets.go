package storage

import (
	"context"
	"fmt"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/money"
)

// CreateBudget inserts a budget entry and returns its id.
func (q *Queries) CreateBudget(ctx context.Context, b *models.Budget) (int64, error) {
	result, err := q.q.ExecContext(ctx,
		"INSERT INTO budgets (user_id, amount_cents, date) VALUES (?, ?, ?)",
		b.UserID, b.Amount.Cents(), b.Date.Format(models.DateLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("create budget: %w", err)
	}
	return result.LastInsertId()
}

// ListBudgets returns a user's budgets, newest first.
func (q *Queries) ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	rows, err := q.q.QueryContext(ctx,
		"SELECT id, user_id, amount_cents, date FROM budgets WHERE user_id = ? ORDER BY date DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var (
			b     models.Budget
			cents int64
			date  string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &cents, &date); err != nil {
			return nil, err
		}
		if b.Date, err = models.ParseDate(date); err != nil {
			return nil, fmt.Errorf("bad stored date %q: %w", date, err)
		}
		b.Amount = money.FromCents(cents)
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// BudgetBetween sums a user's budgets dated in [from, to).
func (q *Queries) BudgetBetween(ctx context.Context, userID int64, from, to time.Time) (money.Amount, error) {
	return q.sum(ctx,
		"SELECT COALESCE(SUM(amount_cents), 0) FROM budgets WHERE user_id = ? AND date >= ? AND date < ?",
		userID, from.Format(models.DateLayout), to.Format(models.DateLayout),
	)
}
