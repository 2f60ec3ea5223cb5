package storage

import (
	"context"
	"fmt"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/money"
)

// CategoryTotalsAll returns every category with the user's all-time total,
// including categories the user never spent in.
func (q *Queries) CategoryTotalsAll(ctx context.Context, userID int64) ([]models.CategoryTotal, error) {
	return q.categoryTotals(ctx, `
		SELECT c.id, c.name, COALESCE(SUM(e.amount_cents), 0)
		FROM categories c
		LEFT JOIN expenses e ON e.category_id = c.id AND e.user_id = ?
		GROUP BY c.id, c.name
		ORDER BY c.name ASC`, userID)
}

// CategoryTotalsBetween returns only the categories with at least one of the
// user's expenses dated in [from, to).
func (q *Queries) CategoryTotalsBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.CategoryTotal, error) {
	return q.categoryTotals(ctx, `
		SELECT c.id, c.name, SUM(e.amount_cents)
		FROM categories c
		JOIN expenses e ON e.category_id = c.id
		WHERE e.user_id = ? AND e.date >= ? AND e.date < ?
		GROUP BY c.id, c.name
		ORDER BY c.name ASC`,
		userID, from.Format(models.DateLayout), to.Format(models.DateLayout))
}

func (q *Queries) categoryTotals(ctx context.Context, query string, args ...any) ([]models.CategoryTotal, error) {
	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var (
			ct    models.CategoryTotal
			cents int64
		)
		if err := rows.Scan(&ct.CategoryID, &ct.Name, &cents); err != nil {
			return nil, err
		}
		ct.Total = money.FromCents(cents)
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}
