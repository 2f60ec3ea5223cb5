package storage

import (
	"context"
	"fmt"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/money"
)

const expenseSelect = `
	SELECT e.id, e.user_id, e.category_id, c.name, e.amount_cents, e.description, e.date
	FROM expenses e
	JOIN categories c ON c.id = e.category_id`

// CreateExpense inserts a new expense and returns its id.
func (q *Queries) CreateExpense(ctx context.Context, e *models.Expense) (int64, error) {
	result, err := q.q.ExecContext(ctx,
		"INSERT INTO expenses (user_id, category_id, amount_cents, description, date) VALUES (?, ?, ?, ?, ?)",
		e.UserID, e.CategoryID, e.Amount.Cents(), e.Description, e.Date.Format(models.DateLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	return result.LastInsertId()
}

// GetExpense retrieves a single expense by ID, visible only to its owner.
func (q *Queries) GetExpense(ctx context.Context, userID, id int64) (*models.Expense, error) {
	row := q.q.QueryRowContext(ctx, expenseSelect+" WHERE e.id = ? AND e.user_id = ?", id, userID)
	e, err := scanExpense(row)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// UpdateExpense overwrites the mutable fields of an owned expense.
func (q *Queries) UpdateExpense(ctx context.Context, e *models.Expense) error {
	result, err := q.q.ExecContext(ctx,
		"UPDATE expenses SET category_id = ?, amount_cents = ?, description = ?, date = ? WHERE id = ? AND user_id = ?",
		e.CategoryID, e.Amount.Cents(), e.Description, e.Date.Format(models.DateLayout), e.ID, e.UserID,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return expectOne(result)
}

// DeleteExpense permanently removes an owned expense.
func (q *Queries) DeleteExpense(ctx context.Context, userID, id int64) error {
	result, err := q.q.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return expectOne(result)
}

// ListExpenses returns a user's expenses, newest first. A non-zero
// categoryID restricts the list to that category.
func (q *Queries) ListExpenses(ctx context.Context, userID, categoryID int64) ([]models.Expense, error) {
	query := expenseSelect + " WHERE e.user_id = ?"
	args := []any{userID}
	if categoryID != 0 {
		query += " AND e.category_id = ?"
		args = append(args, categoryID)
	}
	query += " ORDER BY e.date DESC, e.id DESC"
	return q.queryExpenses(ctx, query, args...)
}

// RecentExpenses returns the user's latest expenses.
func (q *Queries) RecentExpenses(ctx context.Context, userID int64, limit int) ([]models.Expense, error) {
	return q.queryExpenses(ctx, expenseSelect+" WHERE e.user_id = ? ORDER BY e.date DESC, e.id DESC LIMIT ?", userID, limit)
}

// TotalSpent sums a user's expenses, optionally for a single category.
func (q *Queries) TotalSpent(ctx context.Context, userID, categoryID int64) (money.Amount, error) {
	query := "SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ?"
	args := []any{userID}
	if categoryID != 0 {
		query += " AND category_id = ?"
		args = append(args, categoryID)
	}
	return q.sum(ctx, query, args...)
}

// SpentBetween sums a user's expenses dated in [from, to).
func (q *Queries) SpentBetween(ctx context.Context, userID int64, from, to time.Time) (money.Amount, error) {
	return q.sum(ctx,
		"SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = ? AND date >= ? AND date < ?",
		userID, from.Format(models.DateLayout), to.Format(models.DateLayout),
	)
}

func (q *Queries) queryExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func (q *Queries) sum(ctx context.Context, query string, args ...any) (money.Amount, error) {
	var cents int64
	if err := q.q.QueryRowContext(ctx, query, args...).Scan(&cents); err != nil {
		return 0, fmt.Errorf("sum: %w", err)
	}
	return money.FromCents(cents), nil
}

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	var (
		e     models.Expense
		cents int64
		date  string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.CategoryName, &cents, &e.Description, &date); err != nil {
		return nil, err
	}
	d, err := models.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("bad stored date %q: %w", date, err)
	}
	e.Amount = money.FromCents(cents)
	e.Date = d
	return &e, nil
}

func expectOne(result interface{ RowsAffected() (int64, error) }) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
