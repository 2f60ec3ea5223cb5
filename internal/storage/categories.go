package storage

import (
	"context"
	"errors"
	"fmt"

	"spendwise/internal/models"
)

// ListCategories returns every category ordered by name.
func (q *Queries) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := q.q.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategoryByName looks a category up by exact, case-sensitive name.
func (q *Queries) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	err := q.q.QueryRowContext(ctx, "SELECT id, name FROM categories WHERE name = ?", name).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// GetOrCreateCategory returns the category called name, inserting it first if
// needed. When a concurrent insert wins the unique constraint the existing row
// is read back instead of failing.
func (q *Queries) GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error) {
	c, err := q.GetCategoryByName(ctx, name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return q.createCategory(ctx, name)
}

// createCategory inserts name. If the unique constraint reports that the row
// already exists, that row is returned.
func (q *Queries) createCategory(ctx context.Context, name string) (*models.Category, error) {
	result, err := q.q.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		if isUniqueViolation(err) {
			return q.GetCategoryByName(ctx, name)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &models.Category{ID: id, Name: name}, nil
}

// CountCategoriesByName is used to check the one-row-per-name invariant.
func (q *Queries) CountCategoriesByName(ctx context.Context, name string) (int, error) {
	var n int
	err := q.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories WHERE name = ?", name).Scan(&n)
	return n, err
}
