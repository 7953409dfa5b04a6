package main

import (
	"fmt"
	"log"
	"os"

	"github.com/labelscore/backend/config"
	httpDelivery "github.com/labelscore/backend/internal/delivery/http"
	"github.com/labelscore/backend/internal/infrastructure/cache"
	"github.com/labelscore/backend/internal/infrastructure/catalog"
	"github.com/labelscore/backend/internal/infrastructure/lexicon"
	"github.com/labelscore/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting LabelScore Backend")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Algorithm: %s, thresholds: %s", cfg.Scoring.AlgorithmVersion, cfg.Scoring.ThresholdSetID)

	// Threshold sets are versioned; an unknown ID is a deployment error.
	thresholds, err := usecase.ThresholdSetByID(cfg.Scoring.ThresholdSetID)
	if err != nil {
		log.Fatalf("Failed to resolve threshold set: %v", err)
	}

	// Initialize infrastructure dependencies. The catalog and lexicon are
	// read-only snapshots constructed up front, never lazily.
	catalogSnapshot, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog snapshot from %s: %v", cfg.Catalog.Path, err)
	}
	log.Printf("Catalog: %d products (version %s)", catalogSnapshot.Size(), catalogSnapshot.Version())

	lexiconSnapshot := lexicon.NewSnapshot()
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize usecase layer
	scoringService := usecase.NewProductScoringService(
		catalogSnapshot,
		memoryCache,
		lexiconSnapshot,
		usecase.ProductScoringServiceConfig{
			CacheTTL: cfg.Cache.TTL,
			Scoring: usecase.ScoringServiceConfig{
				AlgorithmVersion: cfg.Scoring.AlgorithmVersion,
				Thresholds:       thresholds,
				TopReasonLimit:   cfg.Scoring.TopReasonLimit,
			},
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(scoringService, catalogSnapshot)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
