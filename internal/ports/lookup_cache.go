package ports

import (
	"context"

	"plz-coords-service/internal/domain"
)

// Port: a boundary for memoizing completed lookups. Implementations store
// Found and NotFound results only; transient failures never enter a cache.
type LookupCache interface {
	// Get returns the stored result for the code and whether one exists.
	Get(ctx context.Context, code domain.PostalCode) (domain.LookupResult, bool, error)
	// Put stores the result for the code, replacing any previous entry.
	Put(ctx context.Context, code domain.PostalCode, res domain.LookupResult) error
}
