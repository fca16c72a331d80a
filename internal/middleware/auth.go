package middleware

import (
	"net/http"
	"strings"

	"github.com/dukerupert/notevault/internal/auth"
)

// RequireAuth validates the Authorization bearer token and populates the
// request's AuthContext. Browser WebSocket clients cannot set headers, so a
// "token" query parameter is accepted as a fallback.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ac, err := auth.ParseToken(secret, raw)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return token
	}
	return r.URL.Query().Get("token")
}
