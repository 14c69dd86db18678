package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/crucial707/loanapp/internal/auth"
)

type key string

const UsernameKey key = "username"

// TokenClaims attaches the username of a valid token, taken from the "token"
// query parameter or an Authorization bearer header, to the request context.
// Requests without a valid token pass through unchanged; nothing is rejected.
func TokenClaims(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.URL.Query().Get("token")
			if tokenStr == "" {
				if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
					tokenStr = strings.TrimPrefix(h, "Bearer ")
				}
			}
			if tokenStr != "" {
				if username, err := auth.ParseToken(secret, tokenStr); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), UsernameKey, username))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUsername returns the username attached by TokenClaims.
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}
