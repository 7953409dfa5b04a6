package domain

import (
	"fmt"
	"math"
)

// Pillar identifies one of the four scoring dimensions.
type Pillar string

const (
	PillarSugar             Pillar = "p1Sugar"
	PillarSodium            Pillar = "p2Sodium"
	PillarMetabolicLoad     Pillar = "p3MetabolicLoad"
	PillarPositiveNutrition Pillar = "p4PositiveNutrition"
)

// Pillars lists every pillar in declaration order. Tie-breaking in
// reason selection and all iteration over weight maps follow this order.
var Pillars = []Pillar{PillarSugar, PillarSodium, PillarMetabolicLoad, PillarPositiveNutrition}

// Weight profile invariants after finalization.
const (
	WeightTotal     = 100.0
	MinPillarWeight = 5.0
	MaxPillarWeight = 60.0
)

// weightEpsilon tolerates float drift when checking the total.
const weightEpsilon = 1e-6

// WeightProfile maps each pillar to a non-negative weight. ProfileID
// documents which base profile and adjustments produced it, e.g.
// "weights.general_wellness.beverages". The profile is only mutated by
// the selector/adjuster stages and is frozen before scoring.
type WeightProfile struct {
	Weights     map[Pillar]float64 `json:"weights"`
	ProfileID   string             `json:"profileId"`
	LensApplied bool               `json:"lensApplied"`
}

// Clone returns a deep copy so adjustment stages can return new values
// instead of mutating their input.
func (p WeightProfile) Clone() WeightProfile {
	weights := make(map[Pillar]float64, len(p.Weights))
	for pillar, w := range p.Weights {
		weights[pillar] = w
	}
	return WeightProfile{Weights: weights, ProfileID: p.ProfileID, LensApplied: p.LensApplied}
}

// Total returns the sum of all pillar weights.
func (p WeightProfile) Total() float64 {
	total := 0.0
	for _, pillar := range Pillars {
		total += p.Weights[pillar]
	}
	return total
}

// Validate checks the finalized-profile invariants: every pillar present,
// each weight within [MinPillarWeight, MaxPillarWeight], total equal to
// WeightTotal. A violation is a programmer error, not a data problem.
func (p WeightProfile) Validate() error {
	for _, pillar := range Pillars {
		w, ok := p.Weights[pillar]
		if !ok {
			return fmt.Errorf("%w: %s missing from profile %q", ErrInvalidWeightProfile, pillar, p.ProfileID)
		}
		if w < MinPillarWeight-weightEpsilon || w > MaxPillarWeight+weightEpsilon {
			return fmt.Errorf("%w: %s weight %.4f outside [%.0f, %.0f]",
				ErrInvalidWeightProfile, pillar, w, MinPillarWeight, MaxPillarWeight)
		}
	}
	if math.Abs(p.Total()-WeightTotal) > 1e-3 {
		return fmt.Errorf("%w: weights sum to %.4f, want %.0f", ErrInvalidWeightProfile, p.Total(), WeightTotal)
	}
	return nil
}

// Tier is the discretized, user-facing classification of a score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierOkay      Tier = "okay"
	TierAvoid     Tier = "avoid"
)

var tierRank = map[Tier]int{
	TierAvoid:     0,
	TierOkay:      1,
	TierFair:      2,
	TierGood:      3,
	TierExcellent: 4,
}

// Rank returns the tier's position on the health scale; higher is healthier.
func (t Tier) Rank() int {
	return tierRank[t]
}

// WorseTier returns the more restrictive (less healthy) of two tiers.
func WorseTier(a, b Tier) Tier {
	if b.Rank() < a.Rank() {
		return b
	}
	return a
}

// GuardrailCap records one triggered guardrail rule. Immutable.
type GuardrailCap struct {
	RuleID string `json:"ruleId"`
	Tier   Tier   `json:"tier"`
	Reason string `json:"reason"`
}

// ScoringResult is the terminal output of one scoring call. It is
// created once and never mutated, so scoring the same NormalizedProduct
// twice yields identical values.
type ScoringResult struct {
	Barcode     string `json:"barcode,omitempty"`
	ProductName string `json:"productName"`

	AlgorithmVersion string `json:"algorithmVersion"`
	WeightsProfileID string `json:"weightsProfileId"`
	ThresholdSetID   string `json:"thresholdSetId"`

	RawScore float64 `json:"rawScore"`
	Tier     Tier    `json:"tier"`
	Grade    string  `json:"grade"`

	TopReasons  []string       `json:"topReasons,omitempty"`
	Category    string         `json:"category,omitempty"`
	LensApplied bool           `json:"lensApplied"`
	CapsApplied []GuardrailCap `json:"capsApplied,omitempty"`

	PillarsDropped []Pillar   `json:"pillarsDropped,omitempty"`
	MissingFields  []string   `json:"missingFields,omitempty"`
	DataConfidence Confidence `json:"dataConfidence"`
	Notes          []string   `json:"notes,omitempty"`

	IsConfidentCategoryClassification bool     `json:"isConfidentCategoryClassification"`
	SuggestedSwapCategories           []string `json:"suggestedSwapCategories,omitempty"`
}
