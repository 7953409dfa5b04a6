package domain

import (
	"context"
	"time"
)

// CatalogRepository defines read-only access to the product catalog snapshot.
type CatalogRepository interface {
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	Size() int
}

// LexiconClassifier classifies a label-order ingredient list into hits
// and the derived boolean match summary. Implementations must be
// read-only snapshots so scoring stays deterministic.
type LexiconClassifier interface {
	Classify(ingredients []string) ([]IngredientHit, []AdditiveHit, IngredientMatchResult)
}

// ScoreCache defines the interface for caching scoring results
type ScoreCache interface {
	Get(ctx context.Context, key string) (*ScoringResult, error)
	Set(ctx context.Context, key string, result *ScoringResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
