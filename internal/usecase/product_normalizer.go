package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/labelscore/backend/internal/domain"
)

// Compiled regex patterns for serving-size text parsing.
// Labels write servings like "2 cookies (28 g)", "355 ml", "8 fl oz".
var (
	massGramsPattern   = regexp.MustCompile(`(?i)\b(\d+\.?\d*)\s*(?:g|grams?)\b`)
	massOuncesPattern  = regexp.MustCompile(`(?i)\b(\d+\.?\d*)\s*(?:oz|ounces?)\b`)
	volumeMLPattern    = regexp.MustCompile(`(?i)\b(\d+\.?\d*)\s*(?:ml|milliliters?)\b`)
	volumeFlOzPattern  = regexp.MustCompile(`(?i)\b(\d+\.?\d*)\s*fl\.?\s*(?:oz|ounces?)\b`)
	volumeLiterPattern = regexp.MustCompile(`(?i)\b(\d+\.?\d*)\s*(?:l|liters?)\b`)
)

// Unit conversions to grams / milliliters.
const (
	gramsPerOunce = 28.35
	mlPerFluidOz  = 29.574
	mlPerLiter    = 1000.0
)

// beverageTerms classify a category slug as a beverage.
var beverageTerms = []string{
	"beverage", "drink", "soda", "cola", "juice", "water",
	"tea", "coffee", "smoothie", "lemonade", "milk", "shake",
}

// ProductNormalizer builds the engine's NormalizedProduct from a raw
// product: it parses serving descriptors, infers the beverage flag,
// runs the ingredient lexicon, and normalizes density.
type ProductNormalizer struct {
	lexicon   domain.LexiconClassifier
	densities *DensityNormalizer
}

// NewProductNormalizer creates a new product normalizer
func NewProductNormalizer(lexicon domain.LexiconClassifier) *ProductNormalizer {
	return &ProductNormalizer{
		lexicon:   lexicon,
		densities: NewDensityNormalizer(),
	}
}

// Normalize builds an immutable NormalizedProduct for one scoring call.
func (n *ProductNormalizer) Normalize(product *domain.Product) *domain.NormalizedProduct {
	// Fill serving mass/volume from the label text when the structured
	// fields are absent.
	enriched := *product
	if enriched.ServingMassGrams == nil {
		if mass, ok := parseServingMass(enriched.ServingSizeText); ok {
			enriched.ServingMassGrams = &mass
		}
	}
	if enriched.ServingVolumeML == nil {
		if volume, ok := parseServingVolume(enriched.ServingSizeText); ok {
			enriched.ServingVolumeML = &volume
		}
	}

	slug := strings.ToLower(strings.TrimSpace(enriched.Category))
	isBeverage := matchesBeverage(slug)
	isSnack := strings.Contains(slug, "snack")

	// An explicit slug matching exactly one category family is a
	// confident classification; anything else is inference.
	confident := slug != "" && !(isBeverage && isSnack)

	if !isBeverage && slug == "" {
		// No category at all: a volume-only serving is the one safe
		// beverage inference left.
		isBeverage = enriched.ServingVolumeML != nil && enriched.ServingMassGrams == nil
		confident = false
	}

	hits, additives, match := n.lexicon.Classify(enriched.Ingredients)
	density, serving := n.densities.Normalize(&enriched, isBeverage)

	return &domain.NormalizedProduct{
		Product:           enriched,
		CategorySlug:      slug,
		IsBeverage:        isBeverage,
		Ingredients:       hits,
		Additives:         additives,
		Match:             match,
		Density:           density,
		Serving:           serving,
		ConfidentCategory: confident,
		SuggestedSwaps:    suggestedSwaps(isBeverage, isSnack),
	}
}

func matchesBeverage(slug string) bool {
	for _, term := range beverageTerms {
		if strings.Contains(slug, term) {
			return true
		}
	}
	return false
}

// suggestedSwaps echoes healthier sibling categories for the UI; the
// engine passes them through untouched.
func suggestedSwaps(isBeverage, isSnack bool) []string {
	switch {
	case isBeverage:
		return []string{"water", "sparkling-water", "unsweetened-tea"}
	case isSnack:
		return []string{"nuts", "fresh-fruit"}
	default:
		return nil
	}
}

// parseServingMass extracts a serving mass in grams from label text.
func parseServingMass(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	if m := massGramsPattern.FindStringSubmatch(text); m != nil {
		return parsePositiveFloat(m[1])
	}
	// "oz" only counts as mass when it is not "fl oz".
	if volumeFlOzPattern.MatchString(text) {
		return 0, false
	}
	if m := massOuncesPattern.FindStringSubmatch(text); m != nil {
		if grams, ok := parsePositiveFloat(m[1]); ok {
			return grams * gramsPerOunce, true
		}
	}
	return 0, false
}

// parseServingVolume extracts a serving volume in milliliters from label text.
func parseServingVolume(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	if m := volumeMLPattern.FindStringSubmatch(text); m != nil {
		return parsePositiveFloat(m[1])
	}
	if m := volumeFlOzPattern.FindStringSubmatch(text); m != nil {
		if flOz, ok := parsePositiveFloat(m[1]); ok {
			return flOz * mlPerFluidOz, true
		}
	}
	if m := volumeLiterPattern.FindStringSubmatch(text); m != nil {
		if liters, ok := parsePositiveFloat(m[1]); ok {
			return liters * mlPerLiter, true
		}
	}
	return 0, false
}

func parsePositiveFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
