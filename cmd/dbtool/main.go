package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"plz-coords-service/internal/adapters/cache"
	"plz-coords-service/internal/adapters/geocode"
	"plz-coords-service/internal/domain"
	"plz-coords-service/internal/platform/db"
)

// dbtool prepares a Postgres cache backend: it creates the schema and
// optionally warms the cache from the shipped reference table so the
// first requests for well-known codes skip the remote source entirely.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing cache schema...")
	if err := cache.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	tablePath := getEnv("PLZ_TABLE_PATH", "data/plz.json")
	if err := warmFromTable(conn, tablePath); err != nil {
		log.Fatalf("cache warm-up failed: %v", err)
	}
}

// warmFromTable upserts every reference table row as a Found cache entry.
func warmFromTable(conn *sql.DB, tablePath string) error {
	table, err := geocode.LoadTableGeocoder(tablePath)
	if err != nil {
		return err
	}

	log.Printf("Warming cache path=%s entries=%d", tablePath, table.Len())

	lookupCache := cache.NewSQLLookupCache(conn)
	ctx := context.Background()
	for code, coords := range table.Entries() {
		if err := lookupCache.Put(ctx, code, domain.Found(coords)); err != nil {
			return err
		}
	}

	log.Println("Warm-up complete.")
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
