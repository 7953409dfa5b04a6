package catalog

import (
	"regexp"
	"strconv"

	"github.com/labelscore/backend/internal/domain"
)

// Serving-size patterns in catalog data, e.g. "30 g", "355 ml", "2 cookies (28g)".
var (
	servingMassRegex   = regexp.MustCompile(`(?i)\b(\d+\.?\d*)\s*(?:g|grams?)\b`)
	servingVolumeRegex = regexp.MustCompile(`(?i)\b(\d+\.?\d*)\s*(?:ml|milliliters?)\b`)
)

// referenceServingGrams stands in when the catalog entry has no
// parseable serving size. Catalog nutrition is stored per 100g, so a
// 100 g reference serving reproduces those values exactly.
const referenceServingGrams = 100.0

// mapToProduct converts a per-100g catalog record into the per-serving
// product shape the scoring engine consumes.
func mapToProduct(record *catalogRecord) domain.Product {
	product := domain.Product{
		Barcode:         record.Barcode,
		Name:            record.Name,
		Brand:           record.Brand,
		Category:        record.Category,
		ServingSizeText: record.ServingSize,
		Ingredients:     record.Ingredients,
	}

	mass, massOK := parseAmount(servingMassRegex, record.ServingSize)
	volume, volumeOK := parseAmount(servingVolumeRegex, record.ServingSize)

	// Scale per-100g values to the labeled serving. A stated volume is
	// scaled on the water-density convention the dump itself uses for
	// liquid servings.
	factor := referenceServingGrams / 100
	switch {
	case massOK:
		product.ServingMassGrams = &mass
		factor = mass / 100
	case volumeOK:
		product.ServingVolumeML = &volume
		factor = volume / 100
	default:
		reference := referenceServingGrams
		product.ServingMassGrams = &reference
	}

	product.Nutrition = perServingSnapshot(&record.Nutrition, factor)
	return product
}

// perServingSnapshot scales the per-100g catalog nutrition by factor.
// The OpenFoodFacts dump writes absent values as 0; zero calories with
// zero macros would have been filtered out by the generator, so values
// are carried as stated.
func perServingSnapshot(n *catalogNutrition, factor float64) domain.Snapshot {
	v := func(value float64) *float64 {
		scaled := value * factor
		return &scaled
	}
	return domain.Snapshot{
		Calories:      v(n.Calories),
		Protein:       v(n.Protein),
		Carbohydrates: v(n.Carbohydrates),
		Fat:           v(n.Fat),
		SaturatedFat:  v(n.SaturatedFat),
		Fiber:         v(n.Fiber),
		Sugar:         v(n.Sugar),
		Sodium:        v(n.Sodium),
	}
}

func parseAmount(pattern *regexp.Regexp, text string) (float64, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}
