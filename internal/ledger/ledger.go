// Package ledger implements the per-user expense and budget operations.
// Every lookup is filtered by owner; a record that belongs to someone else
// is reported exactly like one that does not exist.
package ledger

import (
	"context"
	"errors"

	"spendwise/internal/metrics"
	"spendwise/internal/models"
	"spendwise/internal/money"
	"spendwise/internal/storage"
)

// Service runs ledger operations against the store.
type Service struct {
	db *storage.DB
}

// NewService creates a new Service.
func NewService(db *storage.DB) *Service {
	return &Service{db: db}
}

// AddExpense validates in and stores a new expense for userID, creating the
// category on first use. Category and expense are written in one transaction.
func (s *Service) AddExpense(ctx context.Context, userID int64, in ExpenseInput) (*models.Expense, error) {
	f, err := in.parse()
	if err != nil {
		return nil, err
	}

	e := &models.Expense{
		UserID:      userID,
		Amount:      f.amount,
		Description: f.description,
		Date:        f.date,
	}
	err = s.db.WithTx(ctx, func(q *storage.Queries) error {
		c, err := q.GetOrCreateCategory(ctx, f.category)
		if err != nil {
			return err
		}
		e.CategoryID, e.CategoryName = c.ID, c.Name
		e.ID, err = q.CreateExpense(ctx, e)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.LedgerWritesTotal.WithLabelValues("expense", "create").Inc()
	return e, nil
}

// GetExpense returns one of userID's expenses.
func (s *Service) GetExpense(ctx context.Context, userID, id int64) (*models.Expense, error) {
	e, err := s.db.GetExpense(ctx, userID, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return e, err
}

// EditExpense replaces category, amount, description and date of an owned
// expense. Ownership is checked before the submission is validated.
func (s *Service) EditExpense(ctx context.Context, userID, id int64, in ExpenseInput) (*models.Expense, error) {
	var e *models.Expense
	err := s.db.WithTx(ctx, func(q *storage.Queries) error {
		var err error
		e, err = q.GetExpense(ctx, userID, id)
		if err != nil {
			return err
		}

		f, err := in.parse()
		if err != nil {
			return err
		}

		c, err := q.GetOrCreateCategory(ctx, f.category)
		if err != nil {
			return err
		}
		e.CategoryID, e.CategoryName = c.ID, c.Name
		e.Amount = f.amount
		e.Description = f.description
		e.Date = f.date
		return q.UpdateExpense(ctx, e)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	metrics.LedgerWritesTotal.WithLabelValues("expense", "update").Inc()
	return e, nil
}

// DeleteExpense permanently removes an owned expense.
func (s *Service) DeleteExpense(ctx context.Context, userID, id int64) error {
	err := s.db.DeleteExpense(ctx, userID, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	metrics.LedgerWritesTotal.WithLabelValues("expense", "delete").Inc()
	return nil
}

// ListExpenses returns userID's expenses ordered by date then id, newest
// first. categoryID 0 means every category.
func (s *Service) ListExpenses(ctx context.Context, userID, categoryID int64) ([]models.Expense, error) {
	return s.db.ListExpenses(ctx, userID, categoryID)
}

// RecentExpenses returns the latest n expenses.
func (s *Service) RecentExpenses(ctx context.Context, userID int64, n int) ([]models.Expense, error) {
	return s.db.RecentExpenses(ctx, userID, n)
}

// TotalSpent sums userID's expenses; categoryID 0 means every category.
func (s *Service) TotalSpent(ctx context.Context, userID, categoryID int64) (money.Amount, error) {
	return s.db.TotalSpent(ctx, userID, categoryID)
}

// Categories lists the shared category dictionary.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.db.ListCategories(ctx)
}

// AddBudget validates in and stores a budget entry for userID.
func (s *Service) AddBudget(ctx context.Context, userID int64, in BudgetInput) (*models.Budget, error) {
	amount, date, err := in.parse()
	if err != nil {
		return nil, err
	}

	b := &models.Budget{UserID: userID, Amount: amount, Date: date}
	if b.ID, err = s.db.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	metrics.LedgerWritesTotal.WithLabelValues("budget", "create").Inc()
	return b, nil
}

// ListBudgets returns userID's budgets, newest first.
func (s *Service) ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	return s.db.ListBudgets(ctx, userID)
}
