package dto

// Successful resolution payload.
type CoordsResponse struct {
	OK  bool    `json:"ok"`
	PLZ string  `json:"plz"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Non-success payload. Error is a stable machine-readable code
// (invalid_format, not_found, lookup_unavailable), never raw input or
// internal error detail.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
