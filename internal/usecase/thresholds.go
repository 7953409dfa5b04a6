package usecase

import (
	"fmt"

	"github.com/labelscore/backend/internal/domain"
)

// ThresholdSet carries every tunable cutoff the pipeline uses: pillar
// curve anchors, guardrail triggers, and tier boundaries. Sets are
// versioned by ID so results remain auditable as the numbers evolve.
type ThresholdSet struct {
	ID string

	// Pillar curve anchors, grams per 100g/100ml. A nutrient at or above
	// its "high" anchor scores 0 on the linear ramp.
	SugarHigh    float64
	SodiumHigh   float64
	SatFatHigh   float64
	NetCarbHigh  float64
	ProteinGoal  float64 // grams per 100 scoring full positive-nutrition credit
	FiberGoal    float64

	// Guardrail triggers.
	FiberCountervailMin float64 // fiber density that offsets an elevated additive
	SugarExtreme        float64 // sugar density that caps the tier outright

	// Tier boundaries on the 0-100 raw score.
	ExcellentMin float64
	GoodMin      float64
	FairMin      float64
	OkayMin      float64
}

// defaultThresholdSetID is the only registered set today.
const defaultThresholdSetID = "thresholds.2025q3"

// thresholdSets registers every known set by ID. The curve anchors
// follow the UK FSA traffic-light cutoffs for "high" sugar, sodium and
// saturated fat per 100g.
var thresholdSets = map[string]ThresholdSet{
	defaultThresholdSetID: {
		ID:          defaultThresholdSetID,
		SugarHigh:   22.5,
		SodiumHigh:  0.6,
		SatFatHigh:  5.0,
		NetCarbHigh: 50.0,
		ProteinGoal: 20.0,
		FiberGoal:   10.0,

		FiberCountervailMin: 3.0,
		SugarExtreme:        30.0,

		ExcellentMin: 85,
		GoodMin:      70,
		FairMin:      55,
		OkayMin:      40,
	},
}

// DefaultThresholds returns the current threshold set.
func DefaultThresholds() ThresholdSet {
	return thresholdSets[defaultThresholdSetID]
}

// ThresholdSetByID looks up a registered threshold set.
func ThresholdSetByID(id string) (ThresholdSet, error) {
	set, ok := thresholdSets[id]
	if !ok {
		return ThresholdSet{}, fmt.Errorf("unknown threshold set %q", id)
	}
	return set, nil
}

// TierFor maps a raw 0-100 score to its tier.
func (t ThresholdSet) TierFor(rawScore float64) domain.Tier {
	switch {
	case rawScore >= t.ExcellentMin:
		return domain.TierExcellent
	case rawScore >= t.GoodMin:
		return domain.TierGood
	case rawScore >= t.FairMin:
		return domain.TierFair
	case rawScore >= t.OkayMin:
		return domain.TierOkay
	default:
		return domain.TierAvoid
	}
}

// GradeFor maps a tier to its letter grade.
func GradeFor(tier domain.Tier) string {
	switch tier {
	case domain.TierExcellent:
		return "A"
	case domain.TierGood:
		return "B"
	case domain.TierFair:
		return "C"
	case domain.TierOkay:
		return "D"
	default:
		return "F"
	}
}
