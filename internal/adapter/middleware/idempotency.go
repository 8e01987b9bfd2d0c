package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// In-progress marker TTL; replaced by the final entry when the
	// handler returns, or expires if the process dies mid-request.
	pendingTTL = 60 * time.Second
	// Allowed clock skew for X-Request-At.
	maxClockSkew = 10 * time.Minute
)

// storedResponse is what we keep in redis per idempotency key.
type storedResponse struct {
	Pending     bool      `json:"pending"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	StoredAt    time.Time `json:"stored_at"`
}

type bodyRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *bodyRecorder) Header() http.Header { return r.w.Header() }
func (r *bodyRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *bodyRecorder) WriteHeader(code int) { r.code = code; r.w.WriteHeader(code) }

// Idempotency makes mutating routes safe to retry. Clients send
// X-Request-Id (uuid or 32-hex) and X-Request-At; a repeated id with the
// same body replays the stored response, a repeated id with a different
// body is rejected. The key is scoped by method, route and the
// authenticated user, so this middleware must run after AuthMiddleware.
func Idempotency(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID := strings.TrimSpace(req.Header.Get("X-Request-Id"))
			if reqID == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing X-Request-Id"})
			}
			if !validRequestID(reqID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid X-Request-Id format"})
			}

			reqAt, err := parseRequestAt(req.Header.Get("X-Request-At"))
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			now := time.Now().UTC()
			if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "X-Request-At too skewed"})
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			userID, _ := c.Get("user_id").(uint64)
			key := idempKey(req.Method, c.Path(), userID, reqID)

			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			pending := storedResponse{
				Pending:     true,
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				StoredAt:    now,
			}
			acquired, err := markPending(ctx, rdb, key, pending)
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !acquired {
				cur, errLoad := loadStored(ctx, rdb, key)
				if errLoad != nil {
					log.Printf("idempotency: load %s: %v", key, errLoad)
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, map[string]string{"error": "X-Request-Id reused with different body"})
				}
				if !cur.Pending && cur.Code != 0 && len(cur.Body) > 0 {
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			rec := &bodyRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			final := storedResponse{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				StoredAt:    time.Now().UTC(),
			}
			if err := storeFinal(context.Background(), rdb, key, final, ttl); err != nil {
				log.Printf("idempotency: store %s: %v", key, err)
			}
			return nil
		}
	}
}
