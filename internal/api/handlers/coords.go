package handlers

import (
	"log"
	"net/http"

	"plz-coords-service/internal/api/dto"
	"plz-coords-service/internal/domain"
	"plz-coords-service/internal/platform/obs"
	"plz-coords-service/internal/ports"
)

// CoordsHandler exposes the postal code resolution endpoint.
type CoordsHandler struct {
	Resolver ports.Resolver
}

// Lookup handles GET /api?plz=<string>. Validation failures are client
// errors; transient source failures surface as 503 with an opaque error
// code, never internal detail.
func (h *CoordsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}

	code, err := domain.ParsePostalCode(r.URL.Query().Get("plz"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_format")
		return
	}

	res, err := h.Resolver.Resolve(r.Context(), code)
	if err != nil {
		log.Printf("req_id=%s resolve failed plz=%s err=%v", obs.RequestID(r.Context()), code, err)
		writeError(w, r, http.StatusServiceUnavailable, "lookup_unavailable")
		return
	}

	if res.Status == domain.StatusNotFound {
		writeJSON(w, r, http.StatusOK, dto.ErrorResponse{OK: false, Error: "not_found"})
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CoordsResponse{
		OK:  true,
		PLZ: string(code),
		Lat: res.Coordinates.Lat,
		Lon: res.Coordinates.Lon,
	})
}
