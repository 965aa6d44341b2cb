// Package errors provides the error types shared across the ChattaTrader client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNotConnected     = errors.New("socket is not connected")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrInvalidPayload   = errors.New("invalid message payload")
	ErrPermissionDenied = errors.New("device permission denied")
)

// ValidationError represents a per-field form validation failure.
// It is recovered locally and shown inline next to the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthError represents a failure reported by the auth API.
// The login/register flow aborts and the user stays on the page.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *AuthError) Is(target error) bool {
	if target == ErrAuthFailed {
		return true
	}
	_, ok := target.(*AuthError)
	return ok
}

// NewAuthError creates a new AuthError
func NewAuthError(statusCode int, message string) *AuthError {
	return &AuthError{StatusCode: statusCode, Message: message}
}

// TransportError represents a connection-level failure on the real-time
// channel. Recovery is the adapter's bounded reconnect loop; past the
// bound the client simply stays disconnected.
type TransportError struct {
	Op      string
	Message string
}

func (e *TransportError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("transport %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *TransportError) Is(target error) bool {
	if target == ErrNotConnected {
		return true
	}
	_, ok := target.(*TransportError)
	return ok
}

// NewTransportError creates a new TransportError
func NewTransportError(op, message string) *TransportError {
	return &TransportError{Op: op, Message: message}
}

// ParseError represents a malformed inbound payload. Such payloads are
// dropped and logged, never surfaced to the UI.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidPayload {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message string) *ParseError {
	return &ParseError{Message: message}
}

// PermissionError represents refused access to a capture device.
// Surfaced as a blocking alert, non-fatal.
type PermissionError struct {
	Device  string
	Message string
}

func (e *PermissionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("permission denied for %s", e.Device)
	}
	return fmt.Sprintf("permission denied for %s: %s", e.Device, e.Message)
}

// Is allows comparison with sentinel errors
func (e *PermissionError) Is(target error) bool {
	if target == ErrPermissionDenied {
		return true
	}
	_, ok := target.(*PermissionError)
	return ok
}

// NewPermissionError creates a new PermissionError
func NewPermissionError(device, message string) *PermissionError {
	return &PermissionError{Device: device, Message: message}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuthError reports whether err wraps an AuthError
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}

// IsTransportError reports whether err wraps a TransportError
func IsTransportError(err error) bool {
	return errors.Is(err, ErrNotConnected)
}

// IsParseError reports whether err wraps a ParseError
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidPayload)
}

// IsPermissionError reports whether err wraps a PermissionError
func IsPermissionError(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
