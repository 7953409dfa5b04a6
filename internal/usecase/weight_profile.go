package usecase

import (
	"strings"

	"github.com/labelscore/backend/internal/domain"
)

// BaseProfileID identifies the unadjusted general-wellness weight distribution.
const BaseProfileID = "weights.general_wellness"

// categoryRule is one pure category adjustment: it matches a product and
// multiplies the pillar weights, appending a suffix to the profile ID.
// Rules are evaluated in declaration order and are mutually exclusive;
// only the first matching rule applies.
type categoryRule struct {
	suffix      string
	matches     func(p *domain.NormalizedProduct) bool
	multipliers map[domain.Pillar]float64
}

// categoryRules holds the ordered category adjustments. Beverage is
// checked before snack; a product cannot match both.
var categoryRules = []categoryRule{
	{
		// Beverage harm is dominated by sugar and positive-nutrition
		// density rather than metabolic load.
		suffix:  ".beverages",
		matches: func(p *domain.NormalizedProduct) bool { return p.IsBeverage },
		multipliers: map[domain.Pillar]float64{
			domain.PillarSugar:             0.85,
			domain.PillarSodium:            0.75,
			domain.PillarMetabolicLoad:     0.80,
			domain.PillarPositiveNutrition: 1.60,
		},
	},
	{
		suffix: ".snacks",
		matches: func(p *domain.NormalizedProduct) bool {
			return strings.Contains(strings.ToLower(p.CategorySlug), "snack")
		},
		multipliers: map[domain.Pillar]float64{
			domain.PillarSugar:             1.15,
			domain.PillarSodium:            1.25,
			domain.PillarMetabolicLoad:     1.00,
			domain.PillarPositiveNutrition: 0.60,
		},
	},
}

// BaseWeightProfile returns the fixed general-wellness base weights.
func BaseWeightProfile() domain.WeightProfile {
	return domain.WeightProfile{
		Weights: map[domain.Pillar]float64{
			domain.PillarSugar:             30,
			domain.PillarSodium:            20,
			domain.PillarMetabolicLoad:     25,
			domain.PillarPositiveNutrition: 25,
		},
		ProfileID: BaseProfileID,
	}
}

// SelectWeightProfile produces the category-adjusted weight profile for a
// product. The result is not yet renormalized; that happens only after
// the ingredient lens has been applied.
func SelectWeightProfile(p *domain.NormalizedProduct) domain.WeightProfile {
	profile := BaseWeightProfile()

	for _, rule := range categoryRules {
		if !rule.matches(p) {
			continue
		}
		for pillar, factor := range rule.multipliers {
			profile.Weights[pillar] *= factor
		}
		profile.ProfileID += rule.suffix
		break
	}

	return profile
}
