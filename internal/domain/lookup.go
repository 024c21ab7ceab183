package domain

// LookupStatus tags the outcome of a completed postal code resolution.
type LookupStatus string

const (
	// A coordinate pair was resolved for the code.
	StatusFound LookupStatus = "found"
	// The code is well-formed but the source has no data for it.
	StatusNotFound LookupStatus = "not_found"
)

// LookupResult is the outcome of resolving a postal code. Exactly one
// variant is active: StatusFound carries Coordinates, StatusNotFound does
// not. Transient source failures are represented as errors, never as a
// LookupResult, so they can never be cached.
type LookupResult struct {
	Status      LookupStatus
	Coordinates Coordinates
}

func Found(c Coordinates) LookupResult {
	return LookupResult{Status: StatusFound, Coordinates: c}
}

func NotFound() LookupResult {
	return LookupResult{Status: StatusNotFound}
}
