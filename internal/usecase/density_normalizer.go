package usecase

import (
	"github.com/labelscore/backend/internal/domain"
)

// DensityNormalizer converts whatever serving representation a label
// offers into the canonical NutritionDensity bundle. It never fails:
// missing serving data degrades to a perServing-only fallback with
// confidence and missing-field reporting.
type DensityNormalizer struct{}

// NewDensityNormalizer creates a new density normalizer
func NewDensityNormalizer() *DensityNormalizer {
	return &DensityNormalizer{}
}

// Normalize derives per-100g / per-100ml snapshots from the per-serving
// nutrition where the label allows, and records which bases were skipped.
// For beverages with only a mass figure, standard water density (1 g/mL)
// synthesizes a volume estimate at reduced confidence.
func (n *DensityNormalizer) Normalize(product *domain.Product, isBeverage bool) (domain.NutritionDensity, domain.NormalizedServing) {
	density := domain.NutritionDensity{
		PerServing: product.Nutrition,
	}
	serving := domain.NormalizedServing{
		LabelText: product.ServingSizeText,
	}

	massKnown := product.ServingMassGrams != nil && *product.ServingMassGrams > 0
	volumeKnown := product.ServingVolumeML != nil && *product.ServingVolumeML > 0

	// Missing fields are reported independent of confidence: an absent
	// serving mass is surfaced even when a stated volume substitutes for it.
	if !massKnown {
		density.MissingFields = append(density.MissingFields, domain.FieldServingMass)
	}
	if !volumeKnown {
		density.MissingFields = append(density.MissingFields, domain.FieldServingVolume)
	}
	if product.ServingSizeText == "" {
		density.MissingFields = append(density.MissingFields, domain.FieldServingDescription)
	}

	assumed := false

	if massKnown {
		mass := *product.ServingMassGrams
		serving.MassGrams = &mass
		per100g := product.Nutrition.Scale(100 / mass)
		density.Per100g = &per100g
		density.Notes = append(density.Notes, domain.NoteDerivedFromLabelMass)
	}

	switch {
	case volumeKnown:
		volume := *product.ServingVolumeML
		serving.VolumeML = &volume
		per100ml := product.Nutrition.Scale(100 / volume)
		density.Per100ml = &per100ml
		density.Notes = append(density.Notes, domain.NoteDerivedFromLabelVolume)
	case isBeverage && massKnown:
		// No stated volume for a beverage: 1 g of the product is taken
		// as 1 mL, so the per-100ml snapshot mirrors per-100g.
		volume := *product.ServingMassGrams
		serving.VolumeML = &volume
		per100ml := product.Nutrition.Scale(100 / volume)
		density.Per100ml = &per100ml
		density.Notes = append(density.Notes, domain.NoteAssumedWaterDensity)
		assumed = true
	}

	if !massKnown && !volumeKnown {
		serving.MassOrVolumeMissing = true
		density.Notes = append(density.Notes, domain.NoteFallbackPerServing)
		if product.ServingSizeText != "" {
			// A serving description exists (e.g. "1 cup") but carries no
			// usable mass or volume.
			density.Notes = append(density.Notes, domain.NoteHouseholdMeasureNoDensity)
		}
	}

	serving.Basis = servingBasis(isBeverage, density)

	for _, basis := range domain.AllBases {
		if density.SnapshotFor(basis) != nil {
			density.AvailableMetrics = append(density.AvailableMetrics, basis)
		} else {
			density.SkippedMetrics = append(density.SkippedMetrics, basis)
		}
	}

	density.DataConfidence = confidenceFor(&density, serving.MassOrVolumeMissing, assumed)

	return density, serving
}

// servingBasis picks the canonical basis for the normalized serving:
// beverages prefer per-100ml, solids per-100g, with perServing as the
// last resort.
func servingBasis(isBeverage bool, density domain.NutritionDensity) domain.Basis {
	if isBeverage && density.Per100ml != nil {
		return domain.BasisPer100ml
	}
	if density.Per100g != nil {
		return domain.BasisPer100g
	}
	if density.Per100ml != nil {
		return domain.BasisPer100ml
	}
	return domain.BasisPerServing
}

// confidenceFor applies the confidence policy: high needs a mass or
// volume derivation, a complete nutrient snapshot, and no assumptions;
// medium tolerates one assumption or one absent nutrient; low means the
// perServing-only fallback was used or the snapshot has more than one gap.
func confidenceFor(density *domain.NutritionDensity, fellBack, assumed bool) domain.Confidence {
	missing := density.PerServing.MissingCount()

	switch {
	case fellBack || missing > 1:
		return domain.ConfidenceLow
	case assumed || missing == 1:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceHigh
	}
}
