package services

import (
	"errors"
	"fmt"

	"conference-portal-api/gateway"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrConflict             = errors.New("record was modified concurrently")
	ErrConfirmationRequired = errors.New("explicit confirmation required")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

// ValidationError reports the first input constraint a request violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// GatewayError wraps a persistence or storage failure.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// translateGatewayError maps gateway sentinels onto service errors; anything else becomes a
// GatewayError.
func translateGatewayError(op, entity, id string, err error) error {
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	case errors.Is(err, gateway.ErrVersionConflict), errors.Is(err, gateway.ErrDuplicate):
		return fmt.Errorf("%s %s: %w", entity, id, ErrConflict)
	}
	return &GatewayError{Op: op, Err: err}
}
