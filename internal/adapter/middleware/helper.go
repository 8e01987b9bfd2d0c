package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func idempKey(method, path string, userID uint64, requestID string) string {
	return fmt.Sprintf("cfc:idemp:%s:%s:%d:%s", strings.ToLower(method), path, userID, requestID)
}

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

func validRequestID(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	return reUUID.MatchString(id) || reHex32.MatchString(id)
}

// parseRequestAt accepts epoch seconds, epoch milliseconds, or
// RFC3339/RFC3339Nano with an explicit timezone. Naive timestamps are
// rejected so retried requests carry an unambiguous instant.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing X-Request-At")
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 { // ms
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("X-Request-At must be epoch (s/ms) or RFC3339 with timezone")
}

func markPending(ctx context.Context, rdb *redis.Client, key string, entry storedResponse) (bool, error) {
	payload, _ := json.Marshal(entry)
	return rdb.SetNX(ctx, key, payload, pendingTTL).Result()
}

func loadStored(ctx context.Context, rdb *redis.Client, key string) (storedResponse, error) {
	var e storedResponse
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	_ = json.Unmarshal(v, &e)
	return e, nil
}

func storeFinal(ctx context.Context, rdb *redis.Client, key string, entry storedResponse, ttl time.Duration) error {
	payload, _ := json.Marshal(entry)
	return rdb.Set(ctx, key, payload, ttl).Err()
}
