package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"plz-coords-service/internal/domain"
	"plz-coords-service/internal/platform/obs"
)

// SQLLookupCache is a Postgres-backed cache mapping postal codes to
// completed lookup results. Cached resolutions survive restarts and can
// be shared between instances. lon/lat are NULL for not_found rows.
type SQLLookupCache struct {
	DB *sql.DB
}

func NewSQLLookupCache(db *sql.DB) *SQLLookupCache {
	return &SQLLookupCache{DB: db}
}

// Fetch the cached result for the given postal code.
func (s *SQLLookupCache) Get(
	ctx context.Context,
	code domain.PostalCode,
) (_ domain.LookupResult, _ bool, err error) {
	defer obs.Time(ctx, "lookup.cache.Get")(&err)

	if s.DB == nil {
		return domain.LookupResult{}, false, errors.New("lookup cache: db is nil")
	}

	q := `
	SELECT status, lon, lat
    FROM plz_lookup_cache
    WHERE plz = $1;
	`

	var status string
	var lon, lat sql.NullFloat64
	err = s.DB.QueryRowContext(ctx, q, string(code)).Scan(&status, &lon, &lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LookupResult{}, false, nil
	}
	if err != nil {
		return domain.LookupResult{}, false, fmt.Errorf("get lookup cache: query plz_lookup_cache table: %w", err)
	}

	switch domain.LookupStatus(status) {
	case domain.StatusFound:
		if !lon.Valid || !lat.Valid {
			return domain.LookupResult{}, false, fmt.Errorf("get lookup cache: found row %q missing coordinates", code)
		}
		return domain.Found(domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}), true, nil
	case domain.StatusNotFound:
		return domain.NotFound(), true, nil
	default:
		return domain.LookupResult{}, false, fmt.Errorf("get lookup cache: unknown status %q for %q", status, code)
	}
}

// Store the result for a postal code, replacing any previous row.
func (s *SQLLookupCache) Put(
	ctx context.Context,
	code domain.PostalCode,
	res domain.LookupResult,
) error {
	if s.DB == nil {
		return errors.New("lookup cache: db is nil")
	}

	var lon, lat sql.NullFloat64
	if res.Status == domain.StatusFound {
		lon = sql.NullFloat64{Float64: res.Coordinates.Lon, Valid: true}
		lat = sql.NullFloat64{Float64: res.Coordinates.Lat, Valid: true}
	}

	q := `
	INSERT INTO plz_lookup_cache (plz, status, lon, lat)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (plz) DO UPDATE
	SET status = EXCLUDED.status,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`

	if _, err := s.DB.ExecContext(ctx, q, string(code), string(res.Status), lon, lat); err != nil {
		return fmt.Errorf("insert lookup cache plz=%q: %w", code, err)
	}

	return nil
}
