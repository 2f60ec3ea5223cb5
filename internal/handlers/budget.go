package handlers

import (
	"errors"
	"net/http"

	"spendwise/internal/ledger"
	"spendwise/internal/models"
)

// BudgetViewModel is the data passed to the budget template.
type BudgetViewModel struct {
	Budgets []models.Budget
	Today   string
}

// Budgets lists the user's budgets, newest first.
func (h *Handlers) Budgets(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	budgets, err := h.ledger.ListBudgets(r.Context(), user.ID)
	if err != nil {
		h.serverError(w, r, err, "list budgets")
		return
	}

	h.render(w, r, http.StatusOK, "budget.html", "Budget", BudgetViewModel{
		Budgets: budgets,
		Today:   h.now().Format(models.DateLayout),
	})
}

// AddBudget records a budget for the month containing the submitted date.
func (h *Handlers) AddBudget(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	_, err := h.ledger.AddBudget(r.Context(), user.ID, ledger.BudgetInput{
		Amount: r.FormValue("amount"),
		Date:   r.FormValue("date"),
	})
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		h.flash(w, r, flashDanger, verr.Message)
	case err != nil:
		h.serverError(w, r, err, "add budget")
		return
	default:
		h.flash(w, r, flashSuccess, "Budget added successfully!")
	}
	http.Redirect(w, r, "/budget", http.StatusFound)
}
