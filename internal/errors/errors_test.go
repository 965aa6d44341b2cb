package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", NewValidationError("email", "invalid email address"), "email: invalid email address"},
		{"auth with message", NewAuthError(401, "invalid credentials"), "authentication failed: invalid credentials"},
		{"auth without message", &AuthError{StatusCode: 500}, "authentication failed"},
		{"transport with op", NewTransportError("dial", "refused"), "transport dial: refused"},
		{"transport without op", &TransportError{Message: "refused"}, "transport error: refused"},
		{"parse", NewParseError("unexpected EOF"), "parse error: unexpected EOF"},
		{"permission with message", NewPermissionError("microphone", "device busy"), "permission denied for microphone: device busy"},
		{"permission without message", &PermissionError{Device: "microphone"}, "permission denied for microphone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"auth", NewAuthError(401, "nope"), ErrAuthFailed},
		{"transport", NewTransportError("send", "closed"), ErrNotConnected},
		{"parse", NewParseError("bad json"), ErrInvalidPayload},
		{"permission", NewPermissionError("microphone", "busy"), ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !IsValidationError(NewValidationError("f", "m")) {
		t.Error("IsValidationError failed on a ValidationError")
	}
	if !IsAuthError(NewAuthError(401, "m")) {
		t.Error("IsAuthError failed on an AuthError")
	}
	if !IsTransportError(NewTransportError("op", "m")) {
		t.Error("IsTransportError failed on a TransportError")
	}
	if !IsParseError(NewParseError("m")) {
		t.Error("IsParseError failed on a ParseError")
	}
	if !IsPermissionError(NewPermissionError("d", "m")) {
		t.Error("IsPermissionError failed on a PermissionError")
	}

	plain := errors.New("plain")
	for name, pred := range map[string]func(error) bool{
		"IsValidationError": IsValidationError,
		"IsAuthError":       IsAuthError,
		"IsTransportError":  IsTransportError,
		"IsParseError":      IsParseError,
		"IsPermissionError": IsPermissionError,
	} {
		if pred(plain) {
			t.Errorf("%s matched a plain error", name)
		}
	}
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("sending message: %w", NewTransportError("send", "closed"))
	if !IsTransportError(wrapped) {
		t.Error("wrapped TransportError not recognized")
	}

	var te *TransportError
	if !errors.As(wrapped, &te) {
		t.Fatal("errors.As failed on wrapped TransportError")
	}
	if te.Op != "send" {
		t.Errorf("Op = %q", te.Op)
	}
}
