package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"plz-coords-service/internal/adapters/cache"
	"plz-coords-service/internal/adapters/geocode"
	"plz-coords-service/internal/api"
	"plz-coords-service/internal/platform/db"
	"plz-coords-service/internal/ports"
	"plz-coords-service/internal/services"
)

// main is the application composition root.
// It wires a lookup source and a cache backend behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")

	geocoder, err := buildGeocoder()
	if err != nil {
		log.Fatal(err)
	}

	lookupCache, err := buildCache()
	if err != nil {
		log.Fatal(err)
	}

	resolver, err := services.NewResolver(lookupCache, geocoder, 5*time.Second)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(resolver)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildGeocoder selects the lookup source. The live Nominatim source is
// the default (what the service ran against originally); the table
// source trades coverage for offline operation.
func buildGeocoder() (ports.Geocoder, error) {
	switch source := getEnv("GEOCODER_SOURCE", "nominatim"); source {
	case "nominatim":
		// Nominatim usage policy: the agent must identify the operator.
		userAgent := os.Getenv("NOMINATIM_USER_AGENT")
		if strings.TrimSpace(userAgent) == "" {
			log.Fatal("NOMINATIM_USER_AGENT is required for the nominatim source")
		}
		geocoder, err := geocode.NewNominatimGeocoder(os.Getenv("NOMINATIM_BASE_URL"), userAgent)
		if err != nil {
			return nil, err
		}
		return geocoder, nil

	case "table":
		tablePath := getEnv("PLZ_TABLE_PATH", "data/plz.json")
		geocoder, err := geocode.LoadTableGeocoder(tablePath)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded plz table path=%s entries=%d", tablePath, geocoder.Len())
		return geocoder, nil

	default:
		log.Fatalf("unknown GEOCODER_SOURCE %q (want nominatim or table)", source)
		return nil, nil
	}
}

// buildCache selects the cache backend. Memory is the default; redis and
// postgres keep cached resolutions across restarts.
func buildCache() (ports.LookupCache, error) {
	switch backend := getEnv("CACHE_BACKEND", "memory"); backend {
	case "memory":
		return cache.NewMemoryLookupCache(), nil

	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if strings.TrimSpace(addr) == "" {
			log.Fatal("REDIS_ADDR is required for the redis cache backend")
		}
		client := redis.NewClient(&redis.Options{Addr: addr})
		return cache.NewRedisLookupCache(client), nil

	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			log.Fatal("DATABASE_URL is required for the postgres cache backend")
		}
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, err
		}
		return cache.NewSQLLookupCache(conn), nil

	default:
		log.Fatalf("unknown CACHE_BACKEND %q (want memory, redis or postgres)", backend)
		return nil, nil
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
