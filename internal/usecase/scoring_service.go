package usecase

import (
	"log"
	"sort"

	"github.com/labelscore/backend/internal/domain"
)

// ScoringServiceConfig holds configuration for the scoring service
type ScoringServiceConfig struct {
	AlgorithmVersion string
	Thresholds       ThresholdSet
	TopReasonLimit   int
}

// ScoringService runs the full pipeline: weight-profile selection →
// lens adjustment → pillar scoring → guardrail capping → result
// assembly. A single service instance is safe for concurrent use; every
// call allocates its own intermediate values and reads no shared
// mutable state.
type ScoringService struct {
	algorithmVersion string
	thresholds       ThresholdSet
	scorer           *PillarScorer
	topReasonLimit   int
}

// NewScoringService creates a new scoring service with dependencies
func NewScoringService(config ScoringServiceConfig) *ScoringService {
	thresholds := config.Thresholds
	if thresholds.ID == "" {
		thresholds = DefaultThresholds()
	}

	limit := config.TopReasonLimit
	if limit <= 0 {
		limit = 3
	}

	version := config.AlgorithmVersion
	if version == "" {
		version = "1.0.0"
	}

	return &ScoringService{
		algorithmVersion: version,
		thresholds:       thresholds,
		scorer:           NewPillarScorer(thresholds),
		topReasonLimit:   limit,
	}
}

// Score computes the full scoring result for one normalized product.
// It is deterministic and total: malformed label data degrades via
// confidence, pillar dropping, and missing-field reporting rather than
// failing.
func (s *ScoringService) Score(p *domain.NormalizedProduct) *domain.ScoringResult {
	profile := SelectWeightProfile(p)
	profile = ApplyLens(profile, p)

	if err := profile.Validate(); err != nil {
		// A finalized profile violating its invariants is a programmer
		// error. Production behavior is to clamp back to the base
		// profile rather than fail the request.
		log.Printf("[SCORE] invalid weight profile for %q: %v", p.Product.Name, err)
		profile = ApplyLens(BaseWeightProfile(), p)
	}

	scores, droppedPillars := s.scorer.Score(p)
	rawScore := WeightedScore(scores, profile)

	caps := EvaluateGuardrails(p, s.thresholds)

	tier := s.thresholds.TierFor(rawScore)
	if effective := EffectiveCap(caps); effective != nil {
		tier = domain.WorseTier(tier, effective.Tier)
	}

	return &domain.ScoringResult{
		Barcode:     p.Product.Barcode,
		ProductName: p.Product.Name,

		AlgorithmVersion: s.algorithmVersion,
		WeightsProfileID: profile.ProfileID,
		ThresholdSetID:   s.thresholds.ID,

		RawScore: rawScore,
		Tier:     tier,
		Grade:    GradeFor(tier),

		TopReasons:  s.topReasons(scores, profile, caps),
		Category:    p.CategorySlug,
		LensApplied: profile.LensApplied,
		CapsApplied: caps,

		PillarsDropped: droppedPillars,
		MissingFields:  p.Density.MissingFields,
		DataConfidence: p.Density.DataConfidence,
		Notes:          p.Density.Notes,

		IsConfidentCategoryClassification: p.ConfidentCategory,
		SuggestedSwapCategories:           p.SuggestedSwaps,
	}
}

// pillarReasons explain a low pillar sub-score in label terms.
var pillarReasons = map[domain.Pillar]string{
	domain.PillarSugar:             "high sugar content",
	domain.PillarSodium:            "high sodium content",
	domain.PillarMetabolicLoad:     "high metabolic load",
	domain.PillarPositiveNutrition: "little positive nutrition",
}

// lowPillarCutoff is the sub-score below which a pillar counts as a
// reason worth surfacing.
const lowPillarCutoff = 60.0

// topReasons builds the ordered, capped-length reason list: guardrail
// reasons first, then the lowest-scoring contributing pillars (ties
// broken by pillar declaration order), then the lens note.
func (s *ScoringService) topReasons(
	scores map[domain.Pillar]float64,
	profile domain.WeightProfile,
	caps []domain.GuardrailCap,
) []string {
	reasons := make([]string, 0, s.topReasonLimit)

	for _, c := range caps {
		if len(reasons) == s.topReasonLimit {
			return reasons
		}
		reasons = append(reasons, c.Reason)
	}

	scored := make([]domain.Pillar, 0, len(scores))
	for _, pillar := range domain.Pillars {
		if _, ok := scores[pillar]; ok {
			scored = append(scored, pillar)
		}
	}
	// Stable sort keeps declaration order between equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scores[scored[i]] < scores[scored[j]]
	})

	for _, pillar := range scored {
		if len(reasons) == s.topReasonLimit {
			return reasons
		}
		if scores[pillar] >= lowPillarCutoff {
			break
		}
		reasons = append(reasons, pillarReasons[pillar])
	}

	if profile.LensApplied && len(reasons) < s.topReasonLimit {
		reasons = append(reasons, "ingredient profile shifted scoring weights")
	}

	return reasons
}
