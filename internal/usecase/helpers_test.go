package usecase

import (
	"github.com/labelscore/backend/internal/domain"
)

func fptr(v float64) *float64 {
	return &v
}

// fullNutrition returns a per-serving snapshot with every field present.
func fullNutrition() domain.Snapshot {
	return domain.Snapshot{
		Calories:      fptr(400),
		Protein:       fptr(5),
		Carbohydrates: fptr(60),
		Fat:           fptr(15),
		SaturatedFat:  fptr(5),
		Fiber:         fptr(2),
		Sugar:         fptr(20),
		Sodium:        fptr(0.5),
		Cholesterol:   fptr(0.01),
	}
}

// stubLexicon is a fixed-output LexiconClassifier for normalizer tests.
type stubLexicon struct {
	hits      []domain.IngredientHit
	additives []domain.AdditiveHit
	match     domain.IngredientMatchResult
}

func (s *stubLexicon) Classify(ingredients []string) ([]domain.IngredientHit, []domain.AdditiveHit, domain.IngredientMatchResult) {
	return s.hits, s.additives, s.match
}

// solidProduct builds a normalized non-beverage product whose density
// was derived from a known serving mass.
func solidProduct(nutrition domain.Snapshot, massGrams float64) *domain.NormalizedProduct {
	product := domain.Product{
		Name:             "Test Product",
		Category:         "cereals",
		Nutrition:        nutrition,
		ServingMassGrams: fptr(massGrams),
	}
	normalizer := NewProductNormalizer(&stubLexicon{})
	return normalizer.Normalize(&product)
}
