package cache

import (
	"context"
	"sync"
	"testing"

	"plz-coords-service/internal/domain"
)

func TestMemoryLookupCacheGetPut(t *testing.T) {
	c := NewMemoryLookupCache()
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

	// Negative results are cached like any other completed lookup.
	if err := c.Put(ctx, "00000", domain.NotFound()); err != nil {
		t.Fatalf("Put negative: %v", err)
	}
	res, ok, _ = c.Get(ctx, "00000")
	if !ok || res.Status != domain.StatusNotFound {
		t.Fatalf("negative Get = ok=%v res=%+v", ok, res)
	}

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestMemoryLookupCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryLookupCache()
	ctx := context.Background()
	res := domain.Found(domain.Coordinates{Lat: 48.1374, Lon: 11.5755})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Put(ctx, "80331", res)
				_, _, _ = c.Get(ctx, "80331")
			}
		}()
	}
	wg.Wait()

	got, ok, _ := c.Get(ctx, "80331")
	if !ok || got != res {
		t.Fatalf("Get after concurrent writes = ok=%v res=%+v", ok, got)
	}
}
