package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"itinerary-engine/internal/adapters/cache"
	"itinerary-engine/internal/adapters/places"
	"itinerary-engine/internal/adapters/repositories"
	"itinerary-engine/internal/adapters/routing"
	"itinerary-engine/internal/adapters/store"
	"itinerary-engine/internal/adapters/weather"
	"itinerary-engine/internal/api"
	"itinerary-engine/internal/config"
	"itinerary-engine/internal/ports"
)

// Trip documents outlive a single day but not a season.
const tripDocumentTTL = 30 * 24 * time.Hour

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, ORS, Open-Meteo) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/places.json")
	redisAddr := config.Get("REDIS_ADDR", "localhost:6379")
	port := config.Get("PORT", "8080")

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	// The ORS provider keeps a persistent SQLite edge cache to avoid
	// re-fetching pairwise travel times across restarts.
	edgeCache := cache.NewSqliteEdgeCache(db)
	provider, err := routing.NewORSRoutingProvider(orsKey, edgeCache)
	if err != nil {
		log.Fatal(err)
	}

	docStore, err := store.NewRedisDocumentStore(redisAddr, tripDocumentTTL)
	if err != nil {
		log.Fatal(err)
	}
	defer docStore.Close()

	// The POI catalog is optional: without it the replace_next adjustment is
	// simply never proposed.
	var catalog ports.PlaceCatalog
	if base := os.Getenv("PLACES_API_URL"); strings.TrimSpace(base) != "" {
		c, err := places.NewHTTPPlaceCatalog(base, os.Getenv("PLACES_API_KEY"))
		if err != nil {
			log.Fatal(err)
		}
		catalog = c
	}

	router := api.NewRouter(api.Deps{
		Places:   repositories.NewSqlitePlaceRepository(db),
		Routing:  provider,
		Catalog:  catalog,
		Weather:  weather.NewOpenMeteoProvider(),
		Store:    docStore,
		Profiles: store.NewSqliteBiometricStore(db),
	})

	// Timeouts are tuned for cold-cache graph building (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
