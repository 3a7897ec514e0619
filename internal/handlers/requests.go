package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/khetguard/khetguard/internal/authview"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ModeRequest switches the auth view.
type ModeRequest struct {
	Mode string `form:"mode" validate:"required,oneof=signup login reset"`
}

// SignupRequest is the posted sign-up form. Field rules live in authview so the
// user sees the exact messages; only shape is bound here.
type SignupRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Terms    string `form:"terms"`
}

// Form converts the request into the view's form state.
func (r SignupRequest) Form() authview.SignupForm {
	return authview.SignupForm{
		Name:          r.Name,
		Email:         r.Email,
		Password:      r.Password,
		AcceptedTerms: r.Terms == "on" || r.Terms == "true",
	}
}

// LoginRequest is the posted login form.
type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Form converts the request into the view's form state.
func (r LoginRequest) Form() authview.LoginForm {
	return authview.LoginForm{Email: r.Email, Password: r.Password}
}

// ResetRequest is the posted password reset form.
type ResetRequest struct {
	Email string `form:"email"`
}

// Form converts the request into the view's form state.
func (r ResetRequest) Form() authview.ResetForm {
	return authview.ResetForm{Email: r.Email}
}
