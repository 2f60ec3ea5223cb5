package ledger

import (
	"strings"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/money"
)

// ExpenseInput is an expense form as submitted.
type ExpenseInput struct {
	Amount      string
	Date        string
	Category    string
	Description string
}

type expenseFields struct {
	amount      money.Amount
	date        time.Time
	category    string
	description string
}

func (in ExpenseInput) parse() (expenseFields, error) {
	category := strings.TrimSpace(in.Category)
	description := strings.TrimSpace(in.Description)
	amountRaw := strings.TrimSpace(in.Amount)
	dateRaw := strings.TrimSpace(in.Date)
	if amountRaw == "" || dateRaw == "" || category == "" || description == "" {
		return expenseFields{}, errMissing
	}

	amount, date, err := parseAmountDate(amountRaw, dateRaw)
	if err != nil {
		return expenseFields{}, err
	}
	return expenseFields{amount: amount, date: date, category: category, description: description}, nil
}

// BudgetInput is a budget form as submitted.
type BudgetInput struct {
	Amount string
	Date   string
}

func (in BudgetInput) parse() (money.Amount, time.Time, error) {
	amountRaw := strings.TrimSpace(in.Amount)
	dateRaw := strings.TrimSpace(in.Date)
	if amountRaw == "" || dateRaw == "" {
		return 0, time.Time{}, errMissing
	}
	return parseAmountDate(amountRaw, dateRaw)
}

func parseAmountDate(amountRaw, dateRaw string) (money.Amount, time.Time, error) {
	amount, err := money.Parse(amountRaw)
	if err != nil {
		return 0, time.Time{}, errAmount
	}
	date, err := models.ParseDate(dateRaw)
	if err != nil {
		return 0, time.Time{}, errDate
	}
	return amount, date, nil
}
