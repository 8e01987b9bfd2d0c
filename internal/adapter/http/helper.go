package http

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func parseUint(raw string) (uint64, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	return n, err == nil && n > 0
}

// operatorFromContext reads the user id the auth middleware stored on the
// request. Zero means the route was mounted without authentication.
func operatorFromContext(c echo.Context) (uint64, bool) {
	id, ok := c.Get("user_id").(uint64)
	return id, ok
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
