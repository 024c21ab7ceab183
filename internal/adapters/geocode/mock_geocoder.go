package geocode

import (
	"context"
	"sync"

	"plz-coords-service/internal/domain"
	"plz-coords-service/internal/ports"
)

// MockGeocoder is a scripted Geocoder for tests. Each postal code maps to
// either coordinates or an error; codes with no script entry resolve to
// ErrNoResult. Calls records how often each code was looked up, so tests
// can assert cache behavior.
type MockGeocoder struct {
	mu     sync.Mutex
	coords map[domain.PostalCode]domain.Coordinates
	errs   map[domain.PostalCode]error
	calls  map[domain.PostalCode]int
}

func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{
		coords: map[domain.PostalCode]domain.Coordinates{},
		errs:   map[domain.PostalCode]error{},
		calls:  map[domain.PostalCode]int{},
	}
}

func (m *MockGeocoder) SetCoordinates(code domain.PostalCode, c domain.Coordinates) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coords[code] = c
	delete(m.errs, code)
}

func (m *MockGeocoder) SetError(code domain.PostalCode, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[code] = err
	delete(m.coords, code)
}

func (m *MockGeocoder) Calls(code domain.PostalCode) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[code]
}

func (m *MockGeocoder) Locate(ctx context.Context, code domain.PostalCode) (domain.Coordinates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[code]++

	if err, ok := m.errs[code]; ok {
		return domain.Coordinates{}, err
	}
	if c, ok := m.coords[code]; ok {
		return c, nil
	}

	return domain.Coordinates{}, ports.ErrNoResult
}
