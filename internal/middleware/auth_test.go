package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukerupert/notevault/internal/auth"
)

var secret = []byte("test-secret")

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(auth.Owner(r.Context())))
	})
}

func TestRequireAuthValidToken(t *testing.T) {
	token, err := auth.NewToken(secret, "alice@example.com", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}

	handler := RequireAuth(secret)(protectedEcho(t))
	req := httptest.NewRequest("GET", "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "alice@example.com" {
		t.Errorf("owner = %q", rec.Body.String())
	}
}

func TestRequireAuthQueryToken(t *testing.T) {
	token, err := auth.NewToken(secret, "alice@example.com", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}

	handler := RequireAuth(secret)(protectedEcho(t))
	req := httptest.NewRequest("GET", "/ws?token="+token, nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	handler := RequireAuth(secret)(protectedEcho(t))
	req := httptest.NewRequest("GET", "/api/notes", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthBadToken(t *testing.T) {
	handler := RequireAuth(secret)(protectedEcho(t))
	req := httptest.NewRequest("GET", "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthWrongSecret(t *testing.T) {
	token, err := auth.NewToken([]byte("other-secret"), "alice@example.com", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}

	handler := RequireAuth(secret)(protectedEcho(t))
	req := httptest.NewRequest("GET", "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
