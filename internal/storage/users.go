package storage

import (
	"context"
	"fmt"

	"spendwise/internal/models"
)

const userColumns = "id, name, email, password_hash, created_at"

// CreateUser creates a new user. A taken email yields ErrDuplicate.
func (q *Queries) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	result, err := q.q.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)",
		name, email, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return q.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := q.q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// GetUserByEmail retrieves a user by exact email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := q.q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

// UserCount returns the number of users in the database.
func (q *Queries) UserCount(ctx context.Context) (int, error) {
	var count int
	err := q.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
