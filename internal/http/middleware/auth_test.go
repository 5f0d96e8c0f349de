package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/voucherdesk/internal/http/middleware"
)

func sign(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return s
}

func TestAuth(t *testing.T) {
	const secret = "s3cret"

	var gotUser string

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = middleware.UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	type args struct {
		secret string
		header string
	}

	type testCase struct {
		name       string
		args       args
		wantStatus int
		wantUser   string
	}

	tests := []testCase{
		{
			name:       "Disabled",
			args:       args{secret: ""},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "MissingHeader",
			args:       args{secret: secret},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongScheme",
			args:       args{secret: secret, header: "Basic abc"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongSecret",
			args:       args{secret: secret, header: "Bearer " + sign(t, "other", jwt.RegisteredClaims{Subject: "u1"})},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired",
			args: args{secret: secret, header: "Bearer " + sign(t, secret, jwt.RegisteredClaims{
				Subject:   "u1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			})},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Valid",
			args:       args{secret: secret, header: "Bearer " + sign(t, secret, jwt.RegisteredClaims{Subject: "u1"})},
			wantStatus: http.StatusNoContent,
			wantUser:   "u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.args.header != "" {
				req.Header.Set("Authorization", tt.args.header)
			}

			rec := httptest.NewRecorder()
			middleware.Auth(tt.args.secret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, gotUser)

			if rec.Code == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"detail"`)
			}
		})
	}
}
