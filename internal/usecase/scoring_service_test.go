package usecase

import (
	"reflect"
	"strings"
	"testing"

	"github.com/labelscore/backend/internal/domain"
)

func newTestScoringService() *ScoringService {
	return NewScoringService(ScoringServiceConfig{AlgorithmVersion: "test"})
}

func TestNewScoringService(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		svc := NewScoringService(ScoringServiceConfig{})
		if svc.thresholds.ID != defaultThresholdSetID {
			t.Errorf("thresholds = %q, want default set", svc.thresholds.ID)
		}
		if svc.topReasonLimit != 3 {
			t.Errorf("topReasonLimit = %d, want 3", svc.topReasonLimit)
		}
		if svc.algorithmVersion == "" {
			t.Error("algorithmVersion empty, want default")
		}
	})
}

// The sweetened-soda scenario: stated volume, no mass, beverage slug,
// non-nutritive sweetener flagged by the lexicon.
func TestScoreSweetenedSoda(t *testing.T) {
	nutrition := domain.Snapshot{
		Calories:      fptr(140),
		Protein:       fptr(0),
		Carbohydrates: fptr(39),
		Fat:           fptr(0),
		SaturatedFat:  fptr(0),
		Fiber:         fptr(0),
		Sugar:         fptr(27),
		Sodium:        fptr(0.045),
		Cholesterol:   fptr(0),
	}
	product := &domain.Product{
		Name:            "Cola",
		Category:        "soda",
		Nutrition:       nutrition,
		ServingVolumeML: fptr(355),
		ServingSizeText: "355 ml",
	}

	lex := &stubLexicon{match: domain.IngredientMatchResult{ContainsNonNutritiveSweetener: true}}
	normalized := NewProductNormalizer(lex).Normalize(product)

	if !normalized.IsBeverage {
		t.Fatal("isBeverage = false, want true for soda slug")
	}

	result := newTestScoringService().Score(normalized)

	if !result.LensApplied {
		t.Error("lensApplied = false, want true")
	}
	if result.WeightsProfileID != "weights.general_wellness.beverages.lens" {
		t.Errorf("weightsProfileID = %q, want beverages and lens markers", result.WeightsProfileID)
	}
	if result.DataConfidence != domain.ConfidenceHigh {
		t.Errorf("confidence = %s, want high (volume was stated)", result.DataConfidence)
	}
	for _, note := range result.Notes {
		if note == domain.NoteAssumedWaterDensity {
			t.Error("water density assumed despite a stated volume")
		}
	}

	foundSweetenerCap := false
	for _, c := range result.CapsApplied {
		if c.RuleID == RuleSweetenerBeverage {
			foundSweetenerCap = true
		}
	}
	if !foundSweetenerCap {
		t.Errorf("capsApplied = %v, want sweetened-beverage rule", result.CapsApplied)
	}
	if result.Tier.Rank() > domain.TierGood.Rank() {
		t.Errorf("tier = %s, want no better than good under the cap", result.Tier)
	}
	if len(result.PillarsDropped) != 0 {
		t.Errorf("pillarsDropped = %v, want none for a complete label", result.PillarsDropped)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	svc := newTestScoringService()
	p := solidProduct(fullNutrition(), 40)

	first := svc.Score(p)
	second := svc.Score(p)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between identical calls:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestScoreGuardrailBoundsTier(t *testing.T) {
	svc := newTestScoringService()

	nutrition := domain.Snapshot{
		Calories:      fptr(380),
		Protein:       fptr(13),
		Carbohydrates: fptr(20),
		Fat:           fptr(6),
		SaturatedFat:  fptr(0.5),
		Fiber:         fptr(1),
		Sugar:         fptr(2),
		Sodium:        fptr(0.05),
		Cholesterol:   fptr(0),
	}

	clean := solidProduct(nutrition, 100)
	flagged := solidProduct(nutrition, 100)
	flagged.Additives = []domain.AdditiveHit{elevatedAdditive("TBHQ")}

	cleanResult := svc.Score(clean)
	flaggedResult := svc.Score(flagged)

	if len(flaggedResult.CapsApplied) == 0 {
		t.Fatal("capsApplied empty, want elevated-additive cap")
	}
	if flaggedResult.Tier.Rank() > domain.TierOkay.Rank() {
		t.Errorf("tier = %s, want no better than okay under the cap", flaggedResult.Tier)
	}
	if cleanResult.Tier.Rank() <= flaggedResult.Tier.Rank() {
		t.Errorf("clean tier %s should beat capped tier %s", cleanResult.Tier, flaggedResult.Tier)
	}
	// The cap bounds the tier, not the numeric score.
	if cleanResult.RawScore != flaggedResult.RawScore {
		t.Errorf("rawScore changed from %v to %v; caps must not touch it", cleanResult.RawScore, flaggedResult.RawScore)
	}
}

func TestScoreTopReasons(t *testing.T) {
	svc := newTestScoringService()

	t.Run("guardrail reasons come first", func(t *testing.T) {
		nutrition := fullNutrition()
		nutrition.Sugar = fptr(40)
		p := solidProduct(nutrition, 100)
		p.Additives = []domain.AdditiveHit{elevatedAdditive("Red 40")}

		result := svc.Score(p)
		if len(result.TopReasons) == 0 {
			t.Fatal("topReasons empty")
		}
		if !strings.Contains(result.TopReasons[0], "Red 40") {
			t.Errorf("topReasons[0] = %q, want the guardrail reason first", result.TopReasons[0])
		}
		if len(result.TopReasons) > 3 {
			t.Errorf("topReasons length = %d, want capped at 3", len(result.TopReasons))
		}
	})

	t.Run("lowest pillar leads without guardrails", func(t *testing.T) {
		nutrition := domain.Snapshot{
			Calories:      fptr(500),
			Protein:       fptr(1),
			Carbohydrates: fptr(65),
			Fat:           fptr(20),
			SaturatedFat:  fptr(1),
			Fiber:         fptr(0.5),
			Sugar:         fptr(45),
			Sodium:        fptr(0.05),
			Cholesterol:   fptr(0),
		}
		p := solidProduct(nutrition, 100)
		// Keep sugar below the extreme-density guardrail basis by using
		// perServing-only density.
		p.Density.Per100g = nil
		p.Density.AvailableMetrics = []domain.Basis{domain.BasisPerServing}
		p.Density.SkippedMetrics = []domain.Basis{domain.BasisPer100g, domain.BasisPer100ml}

		result := svc.Score(p)
		if len(result.TopReasons) == 0 {
			t.Fatal("topReasons empty")
		}
		// Sugar 45 scores 0, positive nutrition ~5: sugar leads.
		if result.TopReasons[0] != "high sugar content" {
			t.Errorf("topReasons[0] = %q, want high sugar content", result.TopReasons[0])
		}
	})
}

func TestScoreEmptyLabel(t *testing.T) {
	svc := newTestScoringService()

	p := NewProductNormalizer(&stubLexicon{}).Normalize(&domain.Product{Name: "Unknown"})

	result := svc.Score(p)

	if len(result.PillarsDropped) != len(domain.Pillars) {
		t.Errorf("pillarsDropped = %v, want all pillars", result.PillarsDropped)
	}
	if result.RawScore != neutralScore {
		t.Errorf("rawScore = %v, want neutral %v", result.RawScore, neutralScore)
	}
	if result.DataConfidence != domain.ConfidenceLow {
		t.Errorf("confidence = %s, want low", result.DataConfidence)
	}
}

func TestScoreVersionFieldsEchoed(t *testing.T) {
	svc := NewScoringService(ScoringServiceConfig{AlgorithmVersion: "2.1.0"})
	p := solidProduct(fullNutrition(), 40)

	result := svc.Score(p)

	if result.AlgorithmVersion != "2.1.0" {
		t.Errorf("algorithmVersion = %q, want 2.1.0", result.AlgorithmVersion)
	}
	if result.ThresholdSetID != defaultThresholdSetID {
		t.Errorf("thresholdSetID = %q, want %q", result.ThresholdSetID, defaultThresholdSetID)
	}
}
