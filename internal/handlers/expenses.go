package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"spendwise/internal/ledger"
	"spendwise/internal/models"

	"github.com/gorilla/mux"
)

const expensesPath = "/myexpence"

// ExpenseListViewModel is the data passed to the expense list template.
type ExpenseListViewModel struct {
	Expenses   []models.Expense
	Categories []models.Category
	CategoryID int64
	Total      string
	Today      string
	Next       string
}

// EditExpenseViewModel is the data passed to the edit form template.
type EditExpenseViewModel struct {
	Expense    *models.Expense
	Categories []models.Category
	Next       string
}

// MyExpenses lists the user's expenses, optionally filtered by category_id.
func (h *Handlers) MyExpenses(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	ctx := r.Context()

	var categoryID int64
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			categoryID = id
		}
	}

	expenses, err := h.ledger.ListExpenses(ctx, user.ID, categoryID)
	if err != nil {
		h.serverError(w, r, err, "list expenses")
		return
	}
	total, err := h.ledger.TotalSpent(ctx, user.ID, categoryID)
	if err != nil {
		h.serverError(w, r, err, "total spent")
		return
	}
	categories, err := h.ledger.Categories(ctx)
	if err != nil {
		h.serverError(w, r, err, "list categories")
		return
	}

	h.render(w, r, http.StatusOK, "myexpence.html", "My expenses", ExpenseListViewModel{
		Expenses:   expenses,
		Categories: categories,
		CategoryID: categoryID,
		Total:      total.String(),
		Today:      h.now().Format(models.DateLayout),
		Next:       r.URL.RequestURI(),
	})
}

// AddExpense records a new expense and returns to the dashboard.
func (h *Handlers) AddExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	dest := safeNext(r.FormValue("next"), "/dashboard")

	_, err := h.ledger.AddExpense(r.Context(), user.ID, expenseInput(r))
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		h.flash(w, r, flashDanger, verr.Message)
	case err != nil:
		h.serverError(w, r, err, "add expense")
		return
	default:
		h.flash(w, r, flashSuccess, "Expense added successfully!")
	}
	http.Redirect(w, r, dest, http.StatusFound)
}

// EditExpenseForm renders the edit form for one of the user's expenses.
func (h *Handlers) EditExpenseForm(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	ctx := r.Context()

	id, ok := expenseID(r)
	if !ok {
		h.expenseNotFound(w, r)
		return
	}
	expense, err := h.ledger.GetExpense(ctx, user.ID, id)
	if errors.Is(err, ledger.ErrNotFound) {
		h.expenseNotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err, "get expense")
		return
	}
	categories, err := h.ledger.Categories(ctx)
	if err != nil {
		h.serverError(w, r, err, "list categories")
		return
	}

	h.render(w, r, http.StatusOK, "edit_expense.html", "Edit expense", EditExpenseViewModel{
		Expense:    expense,
		Categories: categories,
		Next:       safeNext(r.URL.Query().Get("next"), expensesPath),
	})
}

// EditExpense saves changes to one of the user's expenses. On a validation
// failure it goes back to the form, keeping next.
func (h *Handlers) EditExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	next := safeNext(r.FormValue("next"), expensesPath)

	id, ok := expenseID(r)
	if !ok {
		h.expenseNotFound(w, r)
		return
	}

	_, err := h.ledger.EditExpense(r.Context(), user.ID, id, expenseInput(r))
	var verr *ledger.ValidationError
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		h.expenseNotFound(w, r)
		return
	case errors.As(err, &verr):
		h.flash(w, r, flashDanger, verr.Message)
		back := fmt.Sprintf("/expense/%d/edit?next=%s", id, url.QueryEscape(next))
		http.Redirect(w, r, back, http.StatusFound)
		return
	case err != nil:
		h.serverError(w, r, err, "edit expense")
		return
	}

	h.flash(w, r, flashSuccess, "Expense updated successfully!")
	http.Redirect(w, r, next, http.StatusFound)
}

// DeleteExpense permanently removes one of the user's expenses.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	next := safeNext(r.FormValue("next"), expensesPath)

	id, ok := expenseID(r)
	if !ok {
		h.expenseNotFound(w, r)
		return
	}

	err := h.ledger.DeleteExpense(r.Context(), user.ID, id)
	if errors.Is(err, ledger.ErrNotFound) {
		h.expenseNotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err, "delete expense")
		return
	}

	h.flash(w, r, flashWarning, "Expense deleted. This action cannot be undone.")
	http.Redirect(w, r, next, http.StatusFound)
}

func (h *Handlers) expenseNotFound(w http.ResponseWriter, r *http.Request) {
	h.flash(w, r, flashDanger, "Expense not found or access denied.")
	http.Redirect(w, r, expensesPath, http.StatusFound)
}

func expenseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func expenseInput(r *http.Request) ledger.ExpenseInput {
	return ledger.ExpenseInput{
		Amount:      r.FormValue("amount"),
		Date:        r.FormValue("date"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
	}
}
