package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	VerifyToken(tokenString string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the authenticated user id under "user_id" for downstream handlers.
func AuthMiddleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get("Authorization"))
			const prefix = "Bearer "
			if raw == "" || !strings.HasPrefix(raw, prefix) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			sub, err := verifier.VerifyToken(strings.TrimSpace(raw[len(prefix):]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			userID, err := strconv.ParseUint(sub, 10, 64)
			if err != nil || userID == 0 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token subject"})
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
