package api

import (
	"net/http"

	"plz-coords-service/internal/api/handlers"
	"plz-coords-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(resolver ports.Resolver) http.Handler {
	mux := http.NewServeMux()

	coordsHandler := &handlers.CoordsHandler{Resolver: resolver}

	mux.HandleFunc("/", handlers.Index)
	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api", coordsHandler.Lookup)

	return requestIDMiddleware(loggingMiddleware(mux))
}
