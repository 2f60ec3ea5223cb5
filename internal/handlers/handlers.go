package handlers

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"spendwise/internal/auth"
	"spendwise/internal/ledger"
	"spendwise/internal/models"
	"spendwise/internal/report"
	"spendwise/internal/storage"

	"github.com/rs/zerolog/hlog"
)

// Context key type to avoid collisions.
type contextKey string

// UserContextKey is the context key for the authenticated user.
const UserContextKey contextKey = "user"

// Flash kinds, matching the page styles.
const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashWarning = "warning"
	flashInfo    = "info"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db        *storage.DB
	sessions  *auth.Sessions
	accounts  *auth.Service
	ledger    *ledger.Service
	reports   *report.Service
	templates fs.FS
	now       func() time.Time
}

// NewHandlers creates a new Handlers instance. templates must contain
// base.html and one file per page.
func NewHandlers(db *storage.DB, sessions *auth.Sessions, templates fs.FS) *Handlers {
	return &Handlers{
		db:        db,
		sessions:  sessions,
		accounts:  auth.NewService(db),
		ledger:    ledger.NewService(db),
		reports:   report.NewService(db),
		templates: templates,
		now:       time.Now,
	}
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// RequireUser wraps handlers to require a signed-in user. It runs before any
// per-user data is read and puts the user into the request context.
func (h *Handlers) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.sessions.Identity(r)
		if !ok {
			h.flash(w, r, flashWarning, "Please sign in to continue.")
			http.Redirect(w, r, "/SignIn", http.StatusFound)
			return
		}

		user, err := h.db.GetUserByID(r.Context(), id.UserID)
		if errors.Is(err, storage.ErrNotFound) {
			// Account is gone; drop the stale session.
			_ = h.sessions.Logout(w, r)
			http.Redirect(w, r, "/SignIn", http.StatusFound)
			return
		}
		if err != nil {
			h.serverError(w, r, err, "load session user")
			return
		}

		if err := h.sessions.Renew(w, r); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("session renewal failed")
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// redirectIfSignedIn sends signed-in visitors to the dashboard.
func (h *Handlers) redirectIfSignedIn(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := h.sessions.Identity(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return true
	}
	return false
}

// safeNext returns next when it is a same-origin path, otherwise fallback.
// Browsers drop tabs and newlines and read a backslash as a slash, so a path
// holding either could turn into a protocol-relative URL.
func safeNext(next, fallback string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}
	if strings.ContainsFunc(next, func(r rune) bool { return r < 0x20 || r == 0x7f || r == '\\' }) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}

func (h *Handlers) flash(w http.ResponseWriter, r *http.Request, kind, message string) {
	if err := h.sessions.AddFlash(w, r, kind, message); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("failed to store flash")
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error, op string) {
	hlog.FromRequest(r).Error().Err(err).Str("op", op).Msg("request failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// Page is the data passed to every template.
type Page struct {
	Title   string
	User    *models.User
	Flashes []auth.Flash
	View    any
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format(models.DateLayout) },
}

// render executes base.html with viewName. Flashes are popped before the
// status line is written so the session cookie still goes out.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, viewName, title string, data any) {
	tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(h.templates, "base.html", viewName)
	if err != nil {
		h.serverError(w, r, err, "parse template "+viewName)
		return
	}

	page := Page{
		Title:   title,
		User:    GetUserFromContext(r),
		Flashes: h.sessions.Flashes(w, r),
		View:    data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base.html", page); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("view", viewName).Msg("template execution error")
	}
}
