package ports

import (
	"context"
	"errors"
	"fmt"

	"plz-coords-service/internal/domain"
)

// ErrNoResult signals that the source has no data for a well-formed
// postal code. It is a legitimate outcome, not a source failure, and is
// safe to cache.
var ErrNoResult = errors.New("no result for postal code")

// SourceFailureKind classifies transient lookup source failures.
type SourceFailureKind string

const (
	FailureTimeout           SourceFailureKind = "timeout"
	FailureUnreachable       SourceFailureKind = "unreachable"
	FailureMalformedResponse SourceFailureKind = "malformed_response"
)

// SourceError wraps a failed lookup source call. These are transient:
// callers must never cache them, and must surface only a generic message
// to end users.
type SourceError struct {
	Kind SourceFailureKind
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("lookup source %s: %v", e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Port: a boundary for resolving a postal code to coordinates against a
// backing data source (local table or remote geocoding service).
type Geocoder interface {
	// Locate returns the coordinates for the given postal code.
	// ErrNoResult when the source has no data for it; *SourceError on
	// transient failure.
	Locate(ctx context.Context, code domain.PostalCode) (domain.Coordinates, error)
}
