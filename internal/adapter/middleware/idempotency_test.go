package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Idempotency(rdb, ttl))
	e.POST("/loans", handler)
	e.GET("/loans", handler) // non-mutating bypass
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func validHeaders() map[string]string {
	return map[string]string{
		"X-Request-Id": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"X-Request-At": time.Now().UTC().Format(time.RFC3339),
	}
}

func createdHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func TestIdempotency_BypassOnGET(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/loans", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIdempotency_HeaderValidation(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, 30*time.Second, createdHandler)

	cases := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing request id", func(h map[string]string) { delete(h, "X-Request-Id") }},
		{"bad request id format", func(h map[string]string) { h["X-Request-Id"] = "not-an-id" }},
		{"missing request at", func(h map[string]string) { delete(h, "X-Request-At") }},
		{"naive timestamp", func(h map[string]string) { h["X-Request-At"] = "2026-03-10T10:00:00" }},
		{"skewed timestamp", func(h map[string]string) {
			h["X-Request-At"] = time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := validHeaders()
			tc.mutate(h)
			rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]int{"n": 1}), h)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	calls := 0
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]int{"call": calls})
	})

	h := validHeaders()
	body := map[string]string{"loan_number": "2026/102/0000001/541"}

	first := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, body), h)
	if first.Code != http.StatusCreated {
		t.Fatalf("first call: %d", first.Code)
	}

	second := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, body), h)
	if second.Code != http.StatusCreated {
		t.Fatalf("replay code = %d, want 201", second.Code)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body %q differs from original %q", second.Body.String(), first.Body.String())
	}
}

func TestIdempotency_RejectsReusedIDWithDifferentBody(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, 30*time.Second, createdHandler)

	h := validHeaders()
	if rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]int{"amount": 1}), h); rec.Code != http.StatusCreated {
		t.Fatalf("first call: %d", rec.Code)
	}

	rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]int{"amount": 2}), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("reused id with new body = %d, want 409", rec.Code)
	}
}

func TestIdempotency_InProgressConflict(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, 30*time.Second, createdHandler)

	h := validHeaders()
	body := map[string]int{"amount": 1}

	// Simulate a concurrent in-flight request by planting the pending
	// marker the middleware would have written.
	buf, _ := json.Marshal(map[string]int{"amount": 1})
	pending := storedResponse{Pending: true, BodySHA256: bodyHash(buf), RequestID: h["X-Request-Id"]}
	payload, _ := json.Marshal(pending)
	key := idempKey("post", "/loans", 0, h["X-Request-Id"])
	if err := rdb.Set(context.Background(), key, payload, time.Minute).Err(); err != nil {
		t.Fatal(err)
	}

	rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, body), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress retry = %d, want 409", rec.Code)
	}
}

func TestIdempotency_DistinctIDsAreIndependent(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	calls := 0
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]int{"call": calls})
	})

	body := map[string]int{"amount": 1}
	h1 := validHeaders()
	h2 := validHeaders()
	h2["X-Request-Id"] = "cccccccccccccccccccccccccccccccc"

	doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, body), h1)
	doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, body), h2)
	if calls != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}

func TestIdempotency_StoreUnavailable(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	mr.Close() // kill the store before the request
	e := setupEcho(rdb, 30*time.Second, createdHandler)

	rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]int{"n": 1}), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store down = %d, want 503", rec.Code)
	}
}
