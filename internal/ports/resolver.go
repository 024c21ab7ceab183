package ports

import (
	"context"

	"plz-coords-service/internal/domain"
)

// Port: the resolution engine consumed by the HTTP layer. A returned error
// is always a transient source failure; Found/NotFound are values.
type Resolver interface {
	Resolve(ctx context.Context, code domain.PostalCode) (domain.LookupResult, error)
}
