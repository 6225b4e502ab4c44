package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moodflix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTokens(t *testing.T) *utils.TokenManager {
	t.Helper()
	tm, err := utils.NewTokenManager(utils.AuthConfig{JWTSecret: "test-secret"})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return tm
}

// ownerEcho writes the resolved owner, or "-" when none.
var ownerEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	owner, ok := utils.GetOwnerFromContext(r.Context())
	if !ok {
		owner = "-"
	}
	w.Write([]byte(owner))
})

func TestSession(t *testing.T) {
	tokens := newTokens(t)
	userID := uuid.New()
	token, _, err := tokens.Generate(userID, "a@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tests := []struct {
		name     string
		fallback string
		prepare  func(r *http.Request)
		want     string
	}{
		{"cookie", "", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
		}, userID.String()},
		{"bearer header", "", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		}, userID.String()},
		{"no token, auth required", "", func(r *http.Request) {}, "-"},
		{"no token, fallback owner", "local", func(r *http.Request) {}, "local"},
		{"bad token falls back", "local", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "garbage"})
		}, "local"},
		{"token wins over fallback", "local", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
		}, userID.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Session(tokens, nil, tt.fallback, zap.NewNop())(ownerEcho)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("owner = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSession_UserLookup(t *testing.T) {
	tokens := newTokens(t)
	known := uuid.New()
	deleted := uuid.New()
	knownToken, _, _ := tokens.Generate(known, "a@example.com")
	deletedToken, _, _ := tokens.Generate(deleted, "gone@example.com")

	exists := func(_ context.Context, id uuid.UUID) (bool, error) {
		return id == known, nil
	}
	failing := func(context.Context, uuid.UUID) (bool, error) {
		return false, errors.New("store down")
	}

	tests := []struct {
		name     string
		exists   UserExistsFunc
		token    string
		fallback string
		wantCode int
		want     string
	}{
		{"existing user", exists, knownToken, "", http.StatusOK, known.String()},
		{"deleted user, auth required", exists, deletedToken, "", http.StatusOK, "-"},
		{"deleted user, fallback owner", exists, deletedToken, "local", http.StatusOK, "local"},
		{"lookup fails", failing, knownToken, "local", http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Session(tokens, tt.exists, tt.fallback, zap.NewNop())(ownerEcho)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: tt.token})
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK && rec.Body.String() != tt.want {
				t.Errorf("owner = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	h := Session(newTokens(t), nil, "", zap.NewNop())(RequireOwner(ownerEcho))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/favorites", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Unauthorized"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/recommendations", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := RateLimit(0)(next)
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d limited with limiter disabled", i)
		}
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://app.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/movies/trending", nil)
	req.Header.Set("Origin", "http://app.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestLoggerAndMetricsCaptureStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Use(Logger(zap.NewNop()))
	r.Get("/api/movies/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.WriteHeader(http.StatusOK) // ignored
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/42", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestWrapWriterReusesWrapper(t *testing.T) {
	rw := wrapWriter(httptest.NewRecorder())
	if wrapWriter(rw) != rw {
		t.Error("wrapWriter should not double wrap")
	}
}
