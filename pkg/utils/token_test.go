package utils

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(AuthConfig{JWTSecret: "test-secret-of-reasonable-length", SessionTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return m
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := newTestTokenManager(t)
	userID := uuid.New()

	token, expiresAt, err := m.Generate(userID, "a@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expiresAt %v is not in the future", expiresAt)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	got, err := claims.UserID()
	if err != nil || got != userID {
		t.Errorf("UserID() = %v, %v; want %v", got, err, userID)
	}
	if claims.Email != "a@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	m := newTestTokenManager(t)
	other, _ := NewTokenManager(AuthConfig{JWTSecret: "a-completely-different-secret"})

	token, _, _ := m.Generate(uuid.New(), "a@example.com")
	foreign, _, _ := other.Generate(uuid.New(), "b@example.com")

	expired := newTestTokenManager(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, _ := expired.Generate(uuid.New(), "c@example.com")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"tampered", token + "x"},
		{"wrong secret", foreign},
		{"expired", stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestTokenManager_Cookies(t *testing.T) {
	m := newTestTokenManager(t)

	rec := httptest.NewRecorder()
	m.SetCookie(rec, "abc", time.Now().Add(time.Hour))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName || c.Value != "abc" || !c.HttpOnly {
		t.Errorf("unexpected cookie %+v", c)
	}

	rec = httptest.NewRecorder()
	m.ClearCookie(rec)
	if c := rec.Result().Cookies()[0]; c.MaxAge >= 0 {
		t.Errorf("ClearCookie MaxAge = %d, want negative", c.MaxAge)
	}
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	if _, err := NewTokenManager(AuthConfig{}); err == nil {
		t.Error("expected error for empty secret")
	}
}
