package services

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"plz-coords-service/internal/domain"
	"plz-coords-service/internal/platform/obs"
	"plz-coords-service/internal/ports"
)

const defaultLookupTimeout = 5 * time.Second

// Resolver resolves validated postal codes to coordinates.
//
// It coordinates:
//   - A lookup cache consulted before any source call
//   - At most one source invocation per distinct code per process
//     lifetime (negative results included)
//   - A bounded timeout on every source call
//   - Collapsing of concurrent misses for the same code
//
// Transient source failures are returned as errors and never cached, so
// the next request retries the source. The Resolver is safe for
// concurrent use.
type Resolver struct {
	cache    ports.LookupCache
	geocoder ports.Geocoder
	timeout  time.Duration
	group    singleflight.Group
}

func NewResolver(cache ports.LookupCache, geocoder ports.Geocoder, timeout time.Duration) (*Resolver, error) {
	if cache == nil {
		return nil, errors.New("resolver: cache is nil")
	}
	if geocoder == nil {
		return nil, errors.New("resolver: geocoder is nil")
	}
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}

	return &Resolver{
		cache:    cache,
		geocoder: geocoder,
		timeout:  timeout,
	}, nil
}

// Resolve returns the cached result for the code or performs one source
// lookup. A non-nil error is always a *ports.SourceError.
func (r *Resolver) Resolve(
	ctx context.Context,
	code domain.PostalCode,
) (_ domain.LookupResult, err error) {
	defer obs.Time(ctx, "resolver.Resolve")(&err)

	if res, ok, err := r.cache.Get(ctx, code); err != nil {
		// A broken cache degrades to a source call; it never fails the request.
		log.Printf("lookup cache read failed plz=%s err=%v", code, err)
	} else if ok {
		return res, nil
	}

	// Concurrent misses for the same code share one source call. The
	// winning call runs under the first caller's context; best effort
	// only, a duplicate fetch on a race is harmless.
	v, err, _ := r.group.Do(string(code), func() (any, error) {
		return r.lookup(ctx, code)
	})
	if err != nil {
		return domain.LookupResult{}, normalizeSourceError(err)
	}

	return v.(domain.LookupResult), nil
}

func (r *Resolver) lookup(ctx context.Context, code domain.PostalCode) (domain.LookupResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	coords, err := r.geocoder.Locate(ctx, code)
	if errors.Is(err, ports.ErrNoResult) {
		res := domain.NotFound()
		r.store(ctx, code, res)
		return res, nil
	}
	if err != nil {
		return domain.LookupResult{}, err
	}

	res := domain.Found(coords)
	r.store(ctx, code, res)
	return res, nil
}

func (r *Resolver) store(ctx context.Context, code domain.PostalCode, res domain.LookupResult) {
	if err := r.cache.Put(ctx, code, res); err != nil {
		log.Printf("lookup cache write failed plz=%s err=%v", code, err)
	}
}

// normalizeSourceError guarantees the Resolver error contract: anything
// that is not already a SourceError is classified here.
func normalizeSourceError(err error) error {
	var se *ports.SourceError
	if errors.As(err, &se) {
		return err
	}

	kind := ports.FailureUnreachable
	if errors.Is(err, context.DeadlineExceeded) {
		kind = ports.FailureTimeout
	}

	return &ports.SourceError{Kind: kind, Err: err}
}
