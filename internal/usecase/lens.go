package usecase

import (
	"github.com/labelscore/backend/internal/domain"
)

// LensSuffix marks a profile whose weights were shifted by the
// ingredient-driven lens.
const LensSuffix = ".lens"

// ApplyLens layers the ingredient-driven adjustments on top of the
// category-adjusted profile, then clamps every weight into
// [MinPillarWeight, MaxPillarWeight] and renormalizes the total back to
// WeightTotal. Clamping happens strictly before renormalization so the
// renormalization total reflects the clamped values.
//
// The input profile is not mutated; a finalized copy is returned with
// LensApplied set iff an adjustment fired (clamping and renormalization
// alone do not count).
func ApplyLens(profile domain.WeightProfile, p *domain.NormalizedProduct) domain.WeightProfile {
	out := profile.Clone()
	fired := false

	if p.IsBeverage {
		out.Weights[domain.PillarMetabolicLoad] *= 0.90
		out.Weights[domain.PillarPositiveNutrition] *= 1.10
		fired = true
	}

	// Refined oil, non-nutritive sweetener, and ultra-processed markers
	// share a single adjustment: it applies once no matter how many of
	// the three signals are present.
	if p.Match.AnySignal() {
		out.Weights[domain.PillarPositiveNutrition] *= 0.90
		out.Weights[domain.PillarSugar] *= 1.10
		fired = true
	}

	for _, pillar := range domain.Pillars {
		out.Weights[pillar] = clamp(out.Weights[pillar], domain.MinPillarWeight, domain.MaxPillarWeight)
	}

	if total := out.Total(); total > 0 {
		scale := domain.WeightTotal / total
		for _, pillar := range domain.Pillars {
			out.Weights[pillar] *= scale
		}
	}

	out.LensApplied = fired
	if fired {
		out.ProfileID += LensSuffix
	}

	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
