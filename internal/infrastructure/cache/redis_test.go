package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_SetNXRoundTrip(t *testing.T) {
	s := miniredis.RunT(t)

	c, err := OpenRedis(s.Addr(), 3)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 3 {
		t.Fatalf("client DB = %d, want 3", got)
	}

	// SetNX is what both the idempotency store and the scheduler lock
	// rely on, so exercise it rather than plain SET/GET.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ok, err := c.SetNX(ctx, "lock", "a", time.Minute).Result()
	if err != nil || !ok {
		t.Fatalf("first SetNX = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = c.SetNX(ctx, "lock", "b", time.Minute).Result()
	if err != nil || ok {
		t.Fatalf("second SetNX = (%v, %v), want (false, nil)", ok, err)
	}
	if v, _ := c.Get(ctx, "lock").Result(); v != "a" {
		t.Fatalf("lock holder = %q, want %q", v, "a")
	}
}

func TestOpenRedis_UnreachableHost(t *testing.T) {
	if _, err := OpenRedis("not-a-real-host:6379", 0); err == nil {
		t.Fatal("expected error, got nil")
	}
}
