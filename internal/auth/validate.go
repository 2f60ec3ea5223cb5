package auth

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SignupForm is the data submitted on the signup page.
type SignupForm struct {
	Name            string `validate:"required,min=2,max=100"`
	Email           string `validate:"required,email,max=120"`
	Password        string `validate:"required,min=6,max=72"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// FieldErrors maps a form field to a user-facing message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fe[k])
	}
	return strings.Join(msgs, " ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims whitespace from the text fields. Passwords are left as typed.
func (f *SignupForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
}

// Validate checks the form and returns FieldErrors when it is not acceptable.
func (f SignupForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := FieldErrors{}
	for _, v := range verrs {
		if _, seen := fe[v.Field()]; seen {
			continue
		}
		fe[v.Field()] = message(v)
	}
	return fe
}

func message(v validator.FieldError) string {
	switch v.Field() {
	case "Name":
		if v.Tag() == "required" {
			return "Name is required."
		}
		return "Name must be between 2 and 100 characters."
	case "Email":
		if v.Tag() == "required" {
			return "Email is required."
		}
		return "Please enter a valid email address!"
	case "Password":
		switch v.Tag() {
		case "required":
			return "Password is required."
		case "max":
			return "Password must be at most 72 characters."
		}
		return "Password must be at least 6 characters."
	case "ConfirmPassword":
		if v.Tag() == "required" {
			return "Please confirm your password."
		}
		return "Passwords must match."
	}
	return v.Error()
}
