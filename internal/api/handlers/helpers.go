package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"plz-coords-service/internal/api/dto"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	writeJSON(w, r, status, dto.ErrorResponse{OK: false, Error: code})
}
