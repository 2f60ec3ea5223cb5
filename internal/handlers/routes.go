package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Register mounts the application routes on r. limit wraps the credential
// endpoints; pass nil to leave them unthrottled.
func (h *Handlers) Register(r *mux.Router, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	r.HandleFunc("/SignIn", h.SignInForm).Methods(http.MethodGet)
	r.Handle("/SignIn", limit(http.HandlerFunc(h.SignIn))).Methods(http.MethodPost)
	r.HandleFunc("/SignUp", h.SignUpForm).Methods(http.MethodGet)
	r.Handle("/SignUp", limit(http.HandlerFunc(h.SignUp))).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)

	app := r.NewRoute().Subrouter()
	app.Use(h.RequireUser)
	app.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	app.HandleFunc("/myexpence", h.MyExpenses).Methods(http.MethodGet)
	app.HandleFunc("/add_expense", h.AddExpense).Methods(http.MethodPost)
	app.HandleFunc("/expense/{id:[0-9]+}/edit", h.EditExpenseForm).Methods(http.MethodGet)
	app.HandleFunc("/expense/{id:[0-9]+}/edit", h.EditExpense).Methods(http.MethodPost)
	app.HandleFunc("/expense/{id:[0-9]+}/delete", h.DeleteExpense).Methods(http.MethodPost)
	app.HandleFunc("/budget", h.Budgets).Methods(http.MethodGet)
	app.HandleFunc("/budget", h.AddBudget).Methods(http.MethodPost)
	app.HandleFunc("/settings", h.Settings).Methods(http.MethodGet)
}
