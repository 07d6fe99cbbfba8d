package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"fuelsmart/internal/auth"
	"fuelsmart/internal/catalog"
	"fuelsmart/internal/contributor"
	"fuelsmart/internal/db"
	"fuelsmart/internal/favorites"
	"fuelsmart/internal/geocache"
	"fuelsmart/internal/pricestats"
	"fuelsmart/internal/report"
	"fuelsmart/internal/router"
	"fuelsmart/internal/station"
	"fuelsmart/internal/storage"
	"fuelsmart/internal/viewport"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	// ───────────────────────── BRAND CATALOG ─────────────────────────
	catalogPath := os.Getenv("CATALOG_DB_PATH")
	if catalogPath == "" {
		catalogPath = "catalog.db"
	}

	catalogStore, err := catalog.Open(catalogPath, catalog.NewPostgresSource(pgDB))
	if err != nil {
		log.Fatal("❌ Catalog open failed:", err)
	}
	defer catalogStore.Dispose()

	if err := catalogStore.Init(context.Background()); err != nil {
		log.Fatal("❌ Catalog init failed:", err)
	}

	// ───────────────────────── CORE REPOS ─────────────────────────
	stationRepo := station.NewPostgresRepository(pgDB)
	contributorRepo := contributor.NewPostgresRepository(pgDB)
	reportRepo := report.NewPostgresRepository(pgDB)
	favoritesRepo := favorites.NewPostgresRepository(pgDB)
	statsRepo := pricestats.NewRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	stationService := station.NewService(stationRepo)
	contributorService := contributor.NewService(contributorRepo)

	cache := geocache.New()

	reportService := report.NewService(
		reportRepo,
		contributorRepo,
		catalogStore,
		cache,
		envInt("INCORRECT_REPORT_LIMIT", report.DefaultIncorrectReportLimit),
	)

	favoritesService := favorites.NewService(
		favoritesRepo,
		envInt("MAX_FAVORITES", favorites.DefaultCap),
	)

	// ───────────────────────── VIEWPORT ─────────────────────────
	queryLimit := envInt("QUERY_LIMIT", viewport.DefaultQueryLimit)

	scheduler := viewport.NewScheduler(stationRepo, cache, viewport.Options{
		Quiescence:    envDuration("VIEWPORT_QUIESCENCE_MS", viewport.DefaultQuiescence),
		ZoomThreshold: envFloat("ZOOM_THRESHOLD", viewport.DefaultZoomThreshold),
		QueryLimit:    queryLimit,
		Clock:         viewport.NewRealClock(),
	})
	defer scheduler.Stop()

	// ───────────────────────── STORAGE ─────────────────────────
	// Photo evidence is optional. Without R2 credentials the evidence
	// route answers 503 and everything else still works.
	var uploader *storage.EvidenceUploader
	if os.Getenv("R2_ENDPOINT") != "" {
		uploader, err = storage.NewEvidenceUploader(context.Background())
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
	} else {
		log.Println("R2 not configured, evidence uploads disabled")
	}

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.NewRouter(router.Deps{
		Auth:         authHandler,
		Stations:     station.NewHandler(stationService, stationRepo, queryLimit),
		Contributors: contributor.NewHandler(contributorService),
		Viewport:     viewport.NewHandler(scheduler, cache),
		Reports:      report.NewHandler(reportService, uploader),
		Favorites:    favorites.NewHandler(favoritesService),
		Stats:        pricestats.NewHandler(statsRepo),
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8080")
	r.Run(":8080")
}

// --------------------------------------------------

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("❌ Invalid %s: %s", key, v)
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("❌ Invalid %s: %s", key, v)
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	return time.Duration(envInt(key, int(fallback/time.Millisecond))) * time.Millisecond
}
