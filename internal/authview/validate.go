package authview

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation failure codes.
const (
	CodeMissingFields    = "missing_fields"
	CodeWeakPassword     = "weak_password"
	CodeTermsNotAccepted = "terms_not_accepted"
)

// ValidationError is a local, pre-network rejection of a form.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Code
}

// validatorInstance is shared; it caches struct metadata.
var validatorInstance = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

type signupInput struct {
	Name          string `validate:"notblank"`
	Email         string `validate:"notblank"`
	Password      string `validate:"notblank,min=8"`
	AcceptedTerms bool   `validate:"eq=true"`
}

type loginInput struct {
	Email    string `validate:"notblank"`
	Password string `validate:"notblank"`
}

type resetInput struct {
	Email string `validate:"notblank"`
}

// tagCodes ranks failing tags; the lowest ranked failure is the one reported.
var tagCodes = []struct {
	tag  string
	code string
}{
	{"notblank", CodeMissingFields},
	{"min", CodeWeakPassword},
	{"eq", CodeTermsNotAccepted},
}

// firstFailure runs the validator and returns the highest priority code, or "".
func firstFailure(input any) string {
	err := validatorInstance.Struct(input)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return CodeMissingFields
	}
	for _, tc := range tagCodes {
		for _, fe := range verrs {
			if fe.Tag() == tc.tag {
				return tc.code
			}
		}
	}
	return CodeMissingFields
}

// ValidateSignup checks name, email and password presence, then password
// length, then terms acceptance, reporting only the first failure.
func ValidateSignup(f SignupForm) *ValidationError {
	switch firstFailure(signupInput(f)) {
	case "":
		return nil
	case CodeWeakPassword:
		return &ValidationError{Code: CodeWeakPassword, Message: MsgWeakPassword}
	case CodeTermsNotAccepted:
		return &ValidationError{Code: CodeTermsNotAccepted, Message: MsgTermsNotAccepted}
	default:
		return &ValidationError{Code: CodeMissingFields, Message: MsgMissingSignupFields}
	}
}

// ValidateLogin requires both email and password.
func ValidateLogin(f LoginForm) *ValidationError {
	if firstFailure(loginInput(f)) == "" {
		return nil
	}
	return &ValidationError{Code: CodeMissingFields, Message: MsgMissingLoginFields}
}

// ValidateReset requires an email.
func ValidateReset(f ResetForm) *ValidationError {
	if firstFailure(resetInput(f)) == "" {
		return nil
	}
	return &ValidationError{Code: CodeMissingFields, Message: MsgMissingResetEmail}
}
