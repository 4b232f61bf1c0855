package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Message keys for field-level validation errors. They double as the English
// text and as keys into the localized catalog.
const (
	MsgNameTooShort    = "Full name must be at least 2 characters"
	MsgInvalidPhone    = "Phone number is invalid"
	MsgInvalidEmail    = "Email address is invalid"
	MsgEmptySelection  = "Select at least one item"
	MsgInvalidQuantity = "Quantity must be at least 1"
	MsgEmptyPrompt     = "Prompt must not be empty"
	MsgMissingID       = "Identifier is required"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrPaymentFailed    = errors.New("payment failed")
	ErrPaymentCancelled = errors.New("payment cancelled")
	ErrPollTimeout      = errors.New("payment status polling timed out")
	ErrOrderExpired     = errors.New("order reservation expired")
	ErrAborted          = errors.New("payment aborted")
	ErrPaymentConflict  = errors.New("payment reported paid but order was not settled")
)

// ValidationError collects client-side field errors. It never wraps a network
// error: a request carrying a validation error is never sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, msg string) *ValidationError {
	ve := &ValidationError{}
	ve.Add(field, msg)
	return ve
}

// APIError is a non-2xx response from the backend. Message is the
// backend-provided text, empty when the body carried none.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Retriable reports whether repeating the same request may succeed.
func (e *APIError) Retriable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests || e.StatusCode == http.StatusRequestTimeout
}

// TransientError wraps a failure to reach the backend at all.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

func IsTransient(err error) bool {
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Retriable()
	}
	return false
}

// ServerMessage returns the backend-provided message carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message, true
	}
	return "", false
}
