package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"plz-coords-service/internal/domain"
	"plz-coords-service/internal/platform/obs"
	"plz-coords-service/internal/ports"
)

const defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder implements Geocoder against the Nominatim search API.
//
// It coordinates:
//   - Query construction scoped to German postal codes
//   - External API calls with retry/backoff
//   - Mapping of transport and response problems onto the source
//     failure taxonomy
//
// The adapter is safe for concurrent use. Nominatim's usage policy
// requires an identifying User-Agent, so construction fails without one.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewNominatimGeocoder(baseURL, userAgent string) (*NominatimGeocoder, error) {
	if userAgent == "" {
		return nil, errors.New("nominatim user agent is empty")
	}
	if baseURL == "" {
		baseURL = defaultNominatimBaseURL
	}

	return &NominatimGeocoder{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		userAgent: userAgent,
	}, nil
}

// Nominatim returns lat/lon as JSON strings, not numbers.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Locate issues one search request for the postal code, scoped to
// Germany, and returns the first match.
func (n *NominatimGeocoder) Locate(
	ctx context.Context,
	code domain.PostalCode,
) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Locate")(&err)

	endpoint := n.baseURL + "/search"

	resp, err := n.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := n.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", string(code)+", Deutschland")
		q.Set("countrycodes", "de")
		q.Set("format", "jsonv2")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, &ports.SourceError{
			Kind: ports.FailureMalformedResponse,
			Err:  fmt.Errorf("decode search response: %w", err),
		}
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, ports.ErrNoResult
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, &ports.SourceError{
			Kind: ports.FailureMalformedResponse,
			Err:  fmt.Errorf("parse latitude %q: %w", decoded[0].Lat, err),
		}
	}

	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, &ports.SourceError{
			Kind: ports.FailureMalformedResponse,
			Err:  fmt.Errorf("parse longitude %q: %w", decoded[0].Lon, err),
		}
	}

	coords := domain.Coordinates{Lat: lat, Lon: lon}
	if !coords.Valid() {
		return domain.Coordinates{}, &ports.SourceError{
			Kind: ports.FailureMalformedResponse,
			Err:  fmt.Errorf("coordinates out of range: lat=%v lon=%v", lat, lon),
		}
	}

	return coords, nil
}
