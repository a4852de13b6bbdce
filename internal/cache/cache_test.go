package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lyricverse-api/internal/cache"
	"github.com/lyricverse-api/internal/config"
	"github.com/rs/zerolog"
)

func openTestCache(t *testing.T, ttl time.Duration) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(server.Close)

	c, err := cache.Open(context.Background(), &config.CacheConfig{
		Addr: server.Addr(),
		TTL:  ttl,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("cache.Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return c, server
}

func TestCache_SetGet(t *testing.T) {
	c, _ := openTestCache(t, time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "songs:list"); ok {
		t.Error("Expected miss on empty cache")
	}

	c.Set(ctx, "songs:list", []byte(`[{"id":"song-1"}]`))

	value, ok := c.Get(ctx, "songs:list")
	if !ok {
		t.Fatal("Expected hit after Set")
	}
	if string(value) != `[{"id":"song-1"}]` {
		t.Errorf("Unexpected cached value: %s", value)
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c, server := openTestCache(t, 5*time.Minute)
	ctx := context.Background()

	c.Set(ctx, "songs:list", []byte("cached"))

	// miniredis advances TTLs manually
	server.FastForward(5*time.Minute + time.Second)

	if _, ok := c.Get(ctx, "songs:list"); ok {
		t.Error("Expected miss after TTL expiry")
	}
}

func TestCache_DeleteInvalidates(t *testing.T) {
	c, _ := openTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "songs:list", []byte("a"))
	c.Set(ctx, "submissions:pending", []byte("b"))

	c.Delete(ctx, "songs:list", "submissions:pending")

	if _, ok := c.Get(ctx, "songs:list"); ok {
		t.Error("songs:list should be invalidated")
	}
	if _, ok := c.Get(ctx, "submissions:pending"); ok {
		t.Error("submissions:pending should be invalidated")
	}
}

func TestCache_DisabledIsNop(t *testing.T) {
	c, err := cache.Open(context.Background(), &config.CacheConfig{Addr: ""}, zerolog.Nop())
	if err != nil {
		t.Fatalf("cache.Open failed: %v", err)
	}
	ctx := context.Background()

	c.Set(ctx, "key", []byte("value"))
	if _, ok := c.Get(ctx, "key"); ok {
		t.Error("Nop cache should always miss")
	}
}

func TestCache_GetAfterServerGone(t *testing.T) {
	c, server := openTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "key", []byte("value"))
	server.Close()

	// a dead backend degrades to a miss, never an error surfaced to callers
	if _, ok := c.Get(ctx, "key"); ok {
		t.Error("Expected miss when backend is unavailable")
	}
}
