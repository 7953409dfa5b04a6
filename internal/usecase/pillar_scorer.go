package usecase

import (
	"github.com/labelscore/backend/internal/domain"
)

// neutralScore is returned when every pillar lacked its required inputs.
// Scoring a fully unknown product as 0 would classify it "avoid" on no
// evidence; the low data confidence already surfaces the caveat.
const neutralScore = 50.0

// PillarScorer computes the 0-100 sub-score per pillar (higher is
// healthier) from the normalized density, dropping pillars whose
// required inputs are missing.
type PillarScorer struct {
	thresholds ThresholdSet
}

// NewPillarScorer creates a pillar scorer with the given thresholds.
func NewPillarScorer(thresholds ThresholdSet) *PillarScorer {
	return &PillarScorer{thresholds: thresholds}
}

// scoringSnapshot picks the density basis pillar curves run against:
// beverages prefer per-100ml, solids per-100g, with the per-serving
// snapshot as the last resort.
func scoringSnapshot(p *domain.NormalizedProduct) (*domain.Snapshot, domain.Basis) {
	order := []domain.Basis{domain.BasisPer100g, domain.BasisPer100ml, domain.BasisPerServing}
	if p.IsBeverage {
		order = []domain.Basis{domain.BasisPer100ml, domain.BasisPer100g, domain.BasisPerServing}
	}
	for _, basis := range order {
		if snap := p.Density.SnapshotFor(basis); snap != nil {
			return snap, basis
		}
	}
	return &p.Density.PerServing, domain.BasisPerServing
}

// Score computes every pillar sub-score. Pillars whose required inputs
// are absent are excluded entirely (not scored as zero) and returned in
// declaration order in the dropped list.
func (s *PillarScorer) Score(p *domain.NormalizedProduct) (map[domain.Pillar]float64, []domain.Pillar) {
	snap, _ := scoringSnapshot(p)

	scores := make(map[domain.Pillar]float64, len(domain.Pillars))
	var dropped []domain.Pillar

	for _, pillar := range domain.Pillars {
		score, ok := s.scorePillar(pillar, snap)
		if !ok {
			dropped = append(dropped, pillar)
			continue
		}
		scores[pillar] = score
	}

	return scores, dropped
}

// scorePillar returns the sub-score for one pillar and whether its
// minimal input requirement was met.
func (s *PillarScorer) scorePillar(pillar domain.Pillar, snap *domain.Snapshot) (float64, bool) {
	t := s.thresholds

	switch pillar {
	case domain.PillarSugar:
		if snap.Sugar == nil {
			return 0, false
		}
		return ramp(*snap.Sugar, t.SugarHigh), true

	case domain.PillarSodium:
		if snap.Sodium == nil {
			return 0, false
		}
		return ramp(*snap.Sodium, t.SodiumHigh), true

	case domain.PillarMetabolicLoad:
		// Requires at least one of saturated fat / carbohydrates; the
		// score is the mean of whichever signals are present.
		if snap.SaturatedFat == nil && snap.Carbohydrates == nil {
			return 0, false
		}
		sum, count := 0.0, 0
		if snap.SaturatedFat != nil {
			sum += ramp(*snap.SaturatedFat, t.SatFatHigh)
			count++
		}
		if snap.Carbohydrates != nil {
			net := *snap.Carbohydrates
			if snap.Fiber != nil {
				net -= *snap.Fiber
			}
			if net < 0 {
				net = 0
			}
			sum += ramp(net, t.NetCarbHigh)
			count++
		}
		return sum / float64(count), true

	case domain.PillarPositiveNutrition:
		if snap.Protein == nil && snap.Fiber == nil {
			return 0, false
		}
		score := 0.0
		if snap.Protein != nil {
			score += *snap.Protein / t.ProteinGoal * 50
		}
		if snap.Fiber != nil {
			score += *snap.Fiber / t.FiberGoal * 50
		}
		return clamp(score, 0, 100), true
	}

	return 0, false
}

// ramp is the shared linear pillar curve: 100 at zero density, 0 at or
// above the "high" anchor, strictly decreasing in between.
func ramp(value, high float64) float64 {
	if high <= 0 {
		return 0
	}
	return clamp(100*(high-value)/high, 0, 100)
}

// WeightedScore combines the pillar sub-scores under the finalized
// profile. Dropped pillars are excluded and the remaining weights
// renormalized among themselves, keeping the result on the 0-100 scale.
func WeightedScore(scores map[domain.Pillar]float64, profile domain.WeightProfile) float64 {
	totalWeight := 0.0
	for _, pillar := range domain.Pillars {
		if _, ok := scores[pillar]; ok {
			totalWeight += profile.Weights[pillar]
		}
	}
	if totalWeight <= 0 {
		return neutralScore
	}

	weighted := 0.0
	for _, pillar := range domain.Pillars {
		score, ok := scores[pillar]
		if !ok {
			continue
		}
		weighted += score * (profile.Weights[pillar] / totalWeight)
	}
	return weighted
}
