package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"plz-coords-service/internal/domain"
)

func newTestRedisCache(t *testing.T) *RedisLookupCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLookupCache(client)
}

func TestRedisLookupCacheRoundTrip(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "10115"); err != nil || ok {
		t.Fatalf("empty cache Get = ok=%v err=%v, want miss", ok, err)
	}

	found := domain.Found(domain.Coordinates{Lat: 52.5323, Lon: 13.3846})
	if err := c.Put(ctx, "10115", found); err != nil {
		t.Fatalf("Put: %v", err)
	}

	res, ok, err := c.Get(ctx, "10115")
	if err != nil || !ok {
		t.Fatalf("Get after Put = ok=%v err=%v", ok, err)
	}
	if res != found {
		t.Fatalf("Get = %+v, want %+v", res, found)
	}
}

func TestRedisLookupCacheNegativeEntry(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "00000", domain.NotFound()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	res, ok, err := c.Get(ctx, "00000")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v", ok, err)
	}
	if res.Status != domain.StatusNotFound {
		t.Fatalf("status = %q, want %q", res.Status, domain.StatusNotFound)
	}
	if res.Coordinates != (domain.Coordinates{}) {
		t.Fatalf("negative entry carries coordinates: %+v", res.Coordinates)
	}
}

func TestRedisLookupCacheRejectsCorruptEntry(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := NewRedisLookupCache(client)

	if err := srv.Set("plz:10115", "not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	if _, _, err := c.Get(context.Background(), "10115"); err == nil {
		t.Fatal("expected error for corrupt entry")
	}
}
