package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labelscore/backend/internal/domain"
)

// ProductScoringServiceConfig holds configuration for the product scoring service
type ProductScoringServiceConfig struct {
	CacheTTL time.Duration
	Scoring  ScoringServiceConfig
}

// ProductScoringService handles product scoring with catalog lookup and
// result caching. The scoring pipeline itself stays pure; the cache only
// avoids recomputation for repeat barcode lookups.
type ProductScoringService struct {
	catalog    domain.CatalogRepository
	cache      domain.ScoreCache
	normalizer *ProductNormalizer
	scoring    *ScoringService
	cacheTTL   time.Duration
}

// NewProductScoringService creates a new product scoring service with dependencies
func NewProductScoringService(
	catalog domain.CatalogRepository,
	cache domain.ScoreCache,
	lexicon domain.LexiconClassifier,
	config ProductScoringServiceConfig,
) *ProductScoringService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 168 * time.Hour // Default 7 days
	}

	return &ProductScoringService{
		catalog:    catalog,
		cache:      cache,
		normalizer: NewProductNormalizer(lexicon),
		scoring:    NewScoringService(config.Scoring),
		cacheTTL:   cacheTTL,
	}
}

// ScoreProduct normalizes and scores a raw product payload.
func (s *ProductScoringService) ScoreProduct(ctx context.Context, product *domain.Product) (*domain.ScoringResult, error) {
	if product == nil || product.Name == "" {
		return nil, domain.ErrInvalidRequest
	}

	normalized := s.normalizer.Normalize(product)
	return s.scoring.Score(normalized), nil
}

// ScoreBarcode looks a product up in the catalog snapshot and scores it.
// Flow: check cache -> catalog lookup -> normalize -> score -> cache -> return
func (s *ProductScoringService) ScoreBarcode(ctx context.Context, barcode string) (*domain.ScoringResult, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := s.cacheKey(barcode)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	product, err := s.catalog.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	result, err := s.ScoreProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
		// Caching is best effort; the result is still valid.
		log.Printf("[SCORE] failed to cache result for %s: %v", barcode, err)
	}

	return result, nil
}

// cacheKey scopes cached results by algorithm version so rule changes
// never serve stale scores.
// Format: "score:{barcode}:{algorithm_version}"
func (s *ProductScoringService) cacheKey(barcode string) string {
	return fmt.Sprintf("score:%s:%s", barcode, s.scoring.algorithmVersion)
}
