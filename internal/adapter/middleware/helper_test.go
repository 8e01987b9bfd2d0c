package middleware

import (
	"strconv"
	"testing"
	"time"
)

func TestValidRequestID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true},                // 32-hex
		{"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", true},                // case-folded
		{"  aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa  ", true},            // trimmed
		{"550e8400-e29b-41d4-a716-446655440000", true},            // uuid v4
		{"550e8400-e29b-61d4-a716-446655440000", false},           // bad version digit
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},                // 31 chars
		{"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", false},               // not hex
		{"", false},
	}
	for _, tc := range cases {
		if got := validRequestID(tc.id); got != tc.want {
			t.Fatalf("validRequestID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestParseRequestAt(t *testing.T) {
	ref := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	// Epoch seconds.
	got, err := parseRequestAt(strconv.FormatInt(ref.Unix(), 10))
	if err != nil || !got.Equal(ref) {
		t.Fatalf("epoch seconds: %v %v", got, err)
	}

	// Epoch milliseconds.
	got, err = parseRequestAt(strconv.FormatInt(ref.UnixMilli(), 10))
	if err != nil || !got.Equal(ref) {
		t.Fatalf("epoch ms: %v %v", got, err)
	}

	// RFC3339 with offset normalizes to UTC.
	got, err = parseRequestAt("2026-03-10T11:00:00+01:00")
	if err != nil || !got.Equal(ref) {
		t.Fatalf("rfc3339 with offset: %v %v", got, err)
	}

	// Naive timestamps are rejected.
	if _, err := parseRequestAt("2026-03-10T10:00:00"); err == nil {
		t.Fatal("naive timestamp should be rejected")
	}
	if _, err := parseRequestAt(""); err == nil {
		t.Fatal("empty value should be rejected")
	}
	if _, err := parseRequestAt("yesterday"); err == nil {
		t.Fatal("junk should be rejected")
	}
}

func TestIdempKey_ScopesByUser(t *testing.T) {
	a := idempKey("POST", "/loans", 1, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	b := idempKey("POST", "/loans", 2, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if a == b {
		t.Fatal("keys for different users must differ")
	}
	if a != idempKey("post", "/loans", 1, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Fatal("method casing must not change the key")
	}
}

func TestBodyHash_Stable(t *testing.T) {
	if bodyHash([]byte(`{"a":1}`)) != bodyHash([]byte(`{"a":1}`)) {
		t.Fatal("same body must hash identically")
	}
	if bodyHash([]byte(`{"a":1}`)) == bodyHash([]byte(`{"a":2}`)) {
		t.Fatal("different bodies must not collide")
	}
}
