package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakeVerifier struct {
	sub string
	err error
}

func (v fakeVerifier) VerifyToken(string) (string, error) { return v.sub, v.err }

func authEcho(v TokenVerifier) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.GET("/me", func(c echo.Context) error {
		id, _ := c.Get("user_id").(uint64)
		return c.JSON(http.StatusOK, map[string]uint64{"user_id": id})
	}, AuthMiddleware(v))
	return e
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name     string
		verifier fakeVerifier
		header   string
		wantCode int
	}{
		{"valid token", fakeVerifier{sub: "42"}, "Bearer sometoken", http.StatusOK},
		{"missing header", fakeVerifier{sub: "42"}, "", http.StatusUnauthorized},
		{"not bearer", fakeVerifier{sub: "42"}, "Basic abc", http.StatusUnauthorized},
		{"verifier error", fakeVerifier{err: errors.New("expired")}, "Bearer sometoken", http.StatusUnauthorized},
		{"non-numeric subject", fakeVerifier{sub: "abc"}, "Bearer sometoken", http.StatusUnauthorized},
		{"zero subject", fakeVerifier{sub: "0"}, "Bearer sometoken", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := authEcho(tc.verifier)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.wantCode {
				t.Fatalf("code = %d, want %d: %s", rec.Code, tc.wantCode, rec.Body.String())
			}
			if tc.wantCode == http.StatusOK && rec.Body.String() != "{\"user_id\":42}\n" {
				t.Fatalf("body = %q", rec.Body.String())
			}
		})
	}
}
