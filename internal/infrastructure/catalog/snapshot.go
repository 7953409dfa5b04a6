// Package catalog loads the essentials product catalog from its JSON
// dump into an immutable in-memory index. The snapshot is constructed
// explicitly at startup; there is no lazy initialization and no global
// state.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/labelscore/backend/internal/domain"
)

// catalogFile mirrors the JSON produced by the catalog generator.
type catalogFile struct {
	Version      string          `json:"version"`
	GeneratedAt  string          `json:"generatedAt"`
	ProductCount int             `json:"productCount"`
	Products     []catalogRecord `json:"products"`
}

// catalogRecord is one product entry. Nutrition values are per 100g,
// the convention of the OpenFoodFacts dump the catalog is built from.
type catalogRecord struct {
	Barcode     string           `json:"barcode"`
	Name        string           `json:"name"`
	Brand       string           `json:"brand"`
	Category    string           `json:"category"`
	Nutrition   catalogNutrition `json:"nutrition"`
	ServingSize string           `json:"servingSize"`
	Ingredients []string         `json:"ingredients"`
}

type catalogNutrition struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	SaturatedFat  float64 `json:"saturatedFat"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
	Sodium        float64 `json:"sodium"`
}

// Snapshot is a read-only barcode index over the loaded catalog.
type Snapshot struct {
	products    map[string]domain.Product
	version     string
	generatedAt string
}

// Load reads and indexes the catalog JSON at path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrCatalogUnavailable, err)
	}

	snapshot := &Snapshot{
		products:    make(map[string]domain.Product, len(file.Products)),
		version:     file.Version,
		generatedAt: file.GeneratedAt,
	}

	skipped := 0
	for i := range file.Products {
		record := &file.Products[i]
		if record.Barcode == "" || record.Name == "" {
			skipped++
			continue
		}
		snapshot.products[record.Barcode] = mapToProduct(record)
	}

	if skipped > 0 {
		log.Printf("[CATALOG] skipped %d records without barcode or name", skipped)
	}
	log.Printf("[CATALOG] loaded %d products (catalog version %s, generated %s)",
		len(snapshot.products), file.Version, file.GeneratedAt)

	return snapshot, nil
}

// GetByBarcode returns the product for a barcode, or ErrProductNotFound.
func (s *Snapshot) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	product, ok := s.products[barcode]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	// Copy out so callers can never mutate the snapshot.
	return &product, nil
}

// Size returns the number of indexed products.
func (s *Snapshot) Size() int {
	return len(s.products)
}

// Version returns the catalog dump version.
func (s *Snapshot) Version() string {
	return s.version
}
