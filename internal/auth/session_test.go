package auth

import (
	"testing"

	"github.com/chattatrader/chattacli/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()

	if s.Authenticated() {
		t.Error("fresh session already authenticated")
	}
	if s.Token() != "" {
		t.Error("fresh session has a token")
	}

	s.Login(&models.User{ID: "u1", Username: "trader", Token: "jwt"})
	if !s.Authenticated() {
		t.Error("not authenticated after Login")
	}
	if s.Token() != "jwt" {
		t.Errorf("Token = %q", s.Token())
	}
	if s.User().Username != "trader" {
		t.Errorf("User = %+v", s.User())
	}

	s.Logout()
	if s.Authenticated() {
		t.Error("still authenticated after Logout")
	}
	if s.User() != nil {
		t.Error("User survives Logout")
	}
}
