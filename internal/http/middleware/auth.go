package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/voucherdesk/internal/http/respond"
)

type ctxKey struct{}

// Auth requires an HS256 bearer token signed with secret and stores its
// subject as the user ID. An empty secret disables the check.
func Auth(secret string) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Error(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			scheme, raw, ok := strings.Cut(header, " ")
			if !ok || scheme != "Bearer" {
				respond.Error(w, http.StatusUnauthorized, "Invalid authorization header format. Expected 'Bearer <token>'")
				return
			}

			claims := jwt.RegisteredClaims{}

			_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
				return []byte(secret), nil
			})
			if err != nil || claims.Subject == "" {
				respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims.Subject)))
		})
	}
}

// UserID returns the authenticated user, or "" when auth is disabled.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
