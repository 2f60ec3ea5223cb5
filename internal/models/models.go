package models

import (
	"time"

	"spendwise/internal/money"
)

// DateLayout is the calendar-date format used in forms and storage.
const DateLayout = "2006-01-02"

// User represents an account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category is a shared, append-only spending category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Expense represents a single spending record owned by a user.
type Expense struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"user_id"`
	CategoryID   int64        `json:"category_id"`
	CategoryName string       `json:"category"`
	Amount       money.Amount `json:"amount"`
	Description  string       `json:"description"`
	Date         time.Time    `json:"date"`
}

// Budget is the amount a user plans to spend in the month containing Date.
type Budget struct {
	ID     int64        `json:"id"`
	UserID int64        `json:"user_id"`
	Amount money.Amount `json:"amount"`
	Date   time.Time    `json:"date"`
}

// CategoryTotal is the sum of a user's expenses in one category.
type CategoryTotal struct {
	CategoryID int64
	Name       string
	Total      money.Amount
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
