package handlers

import (
	"errors"
	"net/http"

	"spendwise/internal/auth"

	"github.com/rs/zerolog/hlog"
)

type signUpView struct {
	Form   auth.SignupForm
	Errors auth.FieldErrors
}

type signInView struct {
	Email string
	Error string
}

// Home shows the landing page to visitors.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfSignedIn(w, r) {
		return
	}
	h.render(w, r, http.StatusOK, "index.html", "Spendwise", nil)
}

// SignInForm renders the sign-in page.
func (h *Handlers) SignInForm(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfSignedIn(w, r) {
		return
	}
	h.render(w, r, http.StatusOK, "signin.html", "Sign in", signInView{})
}

// SignIn authenticates the submitted credentials.
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	email := r.FormValue("email")

	user, err := h.accounts.Signin(r.Context(), email, r.FormValue("password"))
	if errors.Is(err, auth.ErrAuthFailure) {
		h.render(w, r, http.StatusUnauthorized, "signin.html", "Sign in", signInView{Email: email, Error: "Invalid email or password."})
		return
	}
	if err != nil {
		h.serverError(w, r, err, "sign in")
		return
	}

	if err := h.sessions.Login(w, r, user); err != nil {
		h.serverError(w, r, err, "save session")
		return
	}
	h.flash(w, r, flashSuccess, "Signed in successfully!")
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// SignUpForm renders the registration page.
func (h *Handlers) SignUpForm(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfSignedIn(w, r) {
		return
	}
	h.render(w, r, http.StatusOK, "signup.html", "Sign up", signUpView{})
}

// SignUp creates an account from the registration form.
func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := auth.SignupForm{
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	_, err := h.accounts.Signup(r.Context(), form)
	var fieldErrs auth.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		form.Password, form.ConfirmPassword = "", ""
		h.render(w, r, http.StatusUnprocessableEntity, "signup.html", "Sign up", signUpView{Form: form, Errors: fieldErrs})
		return
	case errors.Is(err, auth.ErrDuplicateAccount):
		h.flash(w, r, flashWarning, "This email is already registered. Try logging in.")
		http.Redirect(w, r, "/SignUp", http.StatusFound)
		return
	case err != nil:
		h.serverError(w, r, err, "sign up")
		return
	}

	h.flash(w, r, flashSuccess, "Account created successfully! You can now log in.")
	http.Redirect(w, r, "/SignIn", http.StatusFound)
}

// Logout clears the session. Calling it without a session is harmless.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("logout failed")
	}
	h.flash(w, r, flashInfo, "You have logged out successfully.")
	http.Redirect(w, r, "/", http.StatusFound)
}
