package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"plz-coords-service/internal/domain"
	"plz-coords-service/internal/ports"
)

// TableGeocoder implements Geocoder over a fixed in-memory table built
// at startup. Lookups are pure map reads; the table is never mutated
// after construction, so no locking is needed.
type TableGeocoder struct {
	entries map[domain.PostalCode]domain.Coordinates
}

// One row of the reference dataset on disk.
type tableEntry struct {
	PLZ string  `json:"plz"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewTableGeocoder(entries map[domain.PostalCode]domain.Coordinates) *TableGeocoder {
	if entries == nil {
		entries = map[domain.PostalCode]domain.Coordinates{}
	}
	return &TableGeocoder{entries: entries}
}

// LoadTableGeocoder reads a JSON reference table from disk and validates
// every row before it becomes part of the lookup table.
func LoadTableGeocoder(path string) (*TableGeocoder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load plz table: read %q: %w", path, err)
	}

	var rows []tableEntry
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("load plz table: parse %q: %w", path, err)
	}

	entries := make(map[domain.PostalCode]domain.Coordinates, len(rows))
	for i, row := range rows {
		code, err := domain.ParsePostalCode(row.PLZ)
		if err != nil {
			return nil, fmt.Errorf("load plz table: row %d: %w", i, err)
		}

		coords := domain.Coordinates{Lat: row.Lat, Lon: row.Lon}
		if !coords.Valid() {
			return nil, fmt.Errorf("load plz table: row %d (%s): coordinates out of range", i, code)
		}

		entries[code] = coords
	}

	return NewTableGeocoder(entries), nil
}

func (t *TableGeocoder) Locate(ctx context.Context, code domain.PostalCode) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}

	coords, ok := t.entries[code]
	if !ok {
		return domain.Coordinates{}, ports.ErrNoResult
	}

	return coords, nil
}

// Len reports the number of postal codes in the table.
func (t *TableGeocoder) Len() int { return len(t.entries) }

// Entries returns a copy of the full table, for cache warm-up tooling.
func (t *TableGeocoder) Entries() map[domain.PostalCode]domain.Coordinates {
	out := make(map[domain.PostalCode]domain.Coordinates, len(t.entries))
	for code, coords := range t.entries {
		out[code] = coords
	}
	return out
}
