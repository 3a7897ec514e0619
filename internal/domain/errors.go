package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the identity layer. These provide consistent, checkable
// errors for common authentication failures.
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrRateLimited        = errors.New("too many requests to the identity provider")
)

// ProviderError is a failure reported by the identity provider. Message is the
// provider's own text and is safe to show to the user.
type ProviderError struct {
	Op      string
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: provider returned status %d", e.Op, e.Status)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// UserMessage returns the text to surface for err, or "" when err carries none.
func UserMessage(err error) string {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Message
	}
	return ""
}
