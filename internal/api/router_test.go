package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"plz-coords-service/internal/adapters/cache"
	"plz-coords-service/internal/adapters/geocode"
	"plz-coords-service/internal/domain"
	"plz-coords-service/internal/ports"
	"plz-coords-service/internal/services"
)

func newTestServer(t *testing.T, g ports.Geocoder) *httptest.Server {
	t.Helper()

	resolver, err := services.NewResolver(cache.NewMemoryLookupCache(), g, time.Second)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	srv := httptest.NewServer(NewRouter(resolver))
	t.Cleanup(srv.Close)
	return srv
}

func tableBackedServer(t *testing.T) *httptest.Server {
	return newTestServer(t, geocode.NewTableGeocoder(map[domain.PostalCode]domain.Coordinates{
		"10115": {Lat: 52.5323, Lon: 13.3846},
	}))
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, body
}

func TestAPIResolvesKnownCode(t *testing.T) {
	srv := tableBackedServer(t)

	status, body := getJSON(t, srv.URL+"/api?plz=10115")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	if body["ok"] != true {
		t.Errorf("ok = %v, want true", body["ok"])
	}
	if body["plz"] != "10115" {
		t.Errorf("plz = %v, want 10115", body["plz"])
	}
	if body["lat"] != 52.5323 {
		t.Errorf("lat = %v, want 52.5323", body["lat"])
	}
	if body["lon"] != 13.3846 {
		t.Errorf("lon = %v, want 13.3846", body["lon"])
	}
}

func TestAPIWellFormedButUnknownCode(t *testing.T) {
	srv := tableBackedServer(t)

	status, body := getJSON(t, srv.URL+"/api?plz=00000")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["ok"] != false {
		t.Errorf("ok = %v, want false", body["ok"])
	}
	if body["error"] != "not_found" {
		t.Errorf("error = %v, want not_found", body["error"])
	}
}

func TestAPIRejectsMalformedCode(t *testing.T) {
	srv := tableBackedServer(t)

	for _, plz := range []string{"abc", "1011", "101155", ""} {
		status, body := getJSON(t, srv.URL+"/api?plz="+plz)
		if status != http.StatusBadRequest {
			t.Errorf("plz=%q: status = %d, want 400", plz, status)
		}
		if body["error"] != "invalid_format" {
			t.Errorf("plz=%q: error = %v, want invalid_format", plz, body["error"])
		}
	}
}

func TestAPISourceFailureIsOpaque(t *testing.T) {
	mock := geocode.NewMockGeocoder()
	mock.SetError("10115", &ports.SourceError{
		Kind: ports.FailureUnreachable,
		Err:  errors.New("connection refused"),
	})

	srv := newTestServer(t, mock)

	status, body := getJSON(t, srv.URL+"/api?plz=10115")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", status)
	}
	if body["error"] != "lookup_unavailable" {
		t.Errorf("error = %v, want lookup_unavailable", body["error"])
	}
}

func TestAPIMethodNotAllowed(t *testing.T) {
	srv := tableBackedServer(t)

	resp, err := http.Post(srv.URL+"/api?plz=10115", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
	if allow := resp.Header.Get("Allow"); allow != http.MethodGet {
		t.Errorf("Allow = %q, want GET", allow)
	}
}

func TestIndexPageServesHTML(t *testing.T) {
	srv := tableBackedServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestUnknownPathReturns404(t *testing.T) {
	srv := tableBackedServer(t)

	resp, err := http.Get(srv.URL + "/nowhere")
	if err != nil {
		t.Fatalf("GET /nowhere: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	srv := tableBackedServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}
