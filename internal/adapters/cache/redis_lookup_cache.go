package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"plz-coords-service/internal/domain"
)

// RedisLookupCache stores lookup results in Redis so cached resolutions
// survive process restarts and can be shared between instances. Keys are
// prefixed with "plz:"; values are small JSON documents. Entries carry no
// TTL, matching the never-evicted cache semantics.
type RedisLookupCache struct {
	Client *redis.Client
}

func NewRedisLookupCache(client *redis.Client) *RedisLookupCache {
	return &RedisLookupCache{Client: client}
}

// Wire form of a cached result. Lat/Lon are only meaningful when the
// status is "found".
type redisEntry struct {
	Status string  `json:"status"`
	Lat    float64 `json:"lat,omitempty"`
	Lon    float64 `json:"lon,omitempty"`
}

func redisKey(code domain.PostalCode) string {
	return "plz:" + string(code)
}

func (c *RedisLookupCache) Get(
	ctx context.Context,
	code domain.PostalCode,
) (domain.LookupResult, bool, error) {
	if c.Client == nil {
		return domain.LookupResult{}, false, errors.New("lookup cache: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, redisKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.LookupResult{}, false, nil
	}
	if err != nil {
		return domain.LookupResult{}, false, fmt.Errorf("get lookup cache %q: %w", code, err)
	}

	var entry redisEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.LookupResult{}, false, fmt.Errorf("get lookup cache %q: decode entry: %w", code, err)
	}

	switch domain.LookupStatus(entry.Status) {
	case domain.StatusFound:
		return domain.Found(domain.Coordinates{Lat: entry.Lat, Lon: entry.Lon}), true, nil
	case domain.StatusNotFound:
		return domain.NotFound(), true, nil
	default:
		return domain.LookupResult{}, false, fmt.Errorf("get lookup cache %q: unknown status %q", code, entry.Status)
	}
}

func (c *RedisLookupCache) Put(
	ctx context.Context,
	code domain.PostalCode,
	res domain.LookupResult,
) error {
	if c.Client == nil {
		return errors.New("lookup cache: redis client is nil")
	}

	entry := redisEntry{Status: string(res.Status)}
	if res.Status == domain.StatusFound {
		entry.Lat = res.Coordinates.Lat
		entry.Lon = res.Coordinates.Lon
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("put lookup cache %q: encode entry: %w", code, err)
	}

	if err := c.Client.Set(ctx, redisKey(code), raw, 0).Err(); err != nil {
		return fmt.Errorf("put lookup cache %q: %w", code, err)
	}

	return nil
}
