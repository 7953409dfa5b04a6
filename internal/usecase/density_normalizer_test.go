package usecase

import (
	"math"
	"testing"

	"github.com/labelscore/backend/internal/domain"
)

func TestNormalizeWithServingMass(t *testing.T) {
	normalizer := NewDensityNormalizer()

	product := &domain.Product{
		Name:             "Granola",
		Nutrition:        fullNutrition(),
		ServingMassGrams: fptr(40),
	}

	density, serving := normalizer.Normalize(product, false)

	if density.Per100g == nil {
		t.Fatal("expected per100g snapshot to be derived from serving mass")
	}
	// 20g sugar per 40g serving scales to 50g per 100g
	if got := *density.Per100g.Sugar; math.Abs(got-50) > 1e-9 {
		t.Errorf("per100g sugar = %v, want 50", got)
	}
	if !density.HasNote(domain.NoteDerivedFromLabelMass) {
		t.Errorf("notes = %v, want %s", density.Notes, domain.NoteDerivedFromLabelMass)
	}
	if serving.MassOrVolumeMissing {
		t.Error("massOrVolumeMissing = true, want false")
	}
	if serving.Basis != domain.BasisPer100g {
		t.Errorf("serving basis = %s, want per100g", serving.Basis)
	}
	if density.DataConfidence != domain.ConfidenceHigh {
		t.Errorf("confidence = %s, want high", density.DataConfidence)
	}
}

func TestNormalizeWithServingVolume(t *testing.T) {
	normalizer := NewDensityNormalizer()

	nutrition := fullNutrition()
	nutrition.Sugar = fptr(27)
	product := &domain.Product{
		Name:            "Soda",
		Nutrition:       nutrition,
		ServingVolumeML: fptr(355),
		ServingSizeText: "355 ml",
	}

	density, serving := normalizer.Normalize(product, true)

	if density.Per100ml == nil {
		t.Fatal("expected per100ml snapshot to be derived from serving volume")
	}
	want := 27.0 * 100 / 355
	if got := *density.Per100ml.Sugar; math.Abs(got-want) > 1e-9 {
		t.Errorf("per100ml sugar = %v, want %v", got, want)
	}
	// A stated volume needs no water-density assumption.
	if density.HasNote(domain.NoteAssumedWaterDensity) {
		t.Error("unexpected assumedWaterDensity note for a stated volume")
	}
	if density.DataConfidence != domain.ConfidenceHigh {
		t.Errorf("confidence = %s, want high", density.DataConfidence)
	}
	if serving.Basis != domain.BasisPer100ml {
		t.Errorf("serving basis = %s, want per100ml", serving.Basis)
	}
	// Absent mass is reported even though volume substitutes for it.
	if !contains(density.MissingFields, domain.FieldServingMass) {
		t.Errorf("missingFields = %v, want servingMass reported", density.MissingFields)
	}
}

func TestNormalizeBeverageAssumesWaterDensity(t *testing.T) {
	normalizer := NewDensityNormalizer()

	product := &domain.Product{
		Name:             "Iced Tea",
		Nutrition:        fullNutrition(),
		ServingMassGrams: fptr(240),
	}

	density, serving := normalizer.Normalize(product, true)

	if density.Per100ml == nil {
		t.Fatal("expected per100ml snapshot synthesized via water density")
	}
	if density.Per100g == nil {
		t.Fatal("expected per100g snapshot from serving mass")
	}
	if *density.Per100ml.Sugar != *density.Per100g.Sugar {
		t.Error("water density assumption should mirror per100g values into per100ml")
	}
	if !density.HasNote(domain.NoteAssumedWaterDensity) {
		t.Errorf("notes = %v, want %s", density.Notes, domain.NoteAssumedWaterDensity)
	}
	if density.DataConfidence != domain.ConfidenceMedium {
		t.Errorf("confidence = %s, want medium after an assumption", density.DataConfidence)
	}
	if serving.VolumeML == nil || *serving.VolumeML != 240 {
		t.Errorf("serving volume = %v, want 240", serving.VolumeML)
	}
}

func TestNormalizeFallbackPerServing(t *testing.T) {
	normalizer := NewDensityNormalizer()

	product := &domain.Product{
		Name:            "Mystery Mix",
		Nutrition:       fullNutrition(),
		ServingSizeText: "1 cup",
	}

	density, serving := normalizer.Normalize(product, false)

	if !serving.MassOrVolumeMissing {
		t.Error("massOrVolumeMissing = false, want true")
	}
	if !density.HasNote(domain.NoteFallbackPerServing) {
		t.Errorf("notes = %v, want %s", density.Notes, domain.NoteFallbackPerServing)
	}
	if !density.HasNote(domain.NoteHouseholdMeasureNoDensity) {
		t.Errorf("notes = %v, want %s", density.Notes, domain.NoteHouseholdMeasureNoDensity)
	}
	if density.DataConfidence != domain.ConfidenceLow {
		t.Errorf("confidence = %s, want low", density.DataConfidence)
	}

	wantAvailable := []domain.Basis{domain.BasisPerServing}
	wantSkipped := []domain.Basis{domain.BasisPer100g, domain.BasisPer100ml}
	if !equalBases(density.AvailableMetrics, wantAvailable) {
		t.Errorf("availableMetrics = %v, want %v", density.AvailableMetrics, wantAvailable)
	}
	if !equalBases(density.SkippedMetrics, wantSkipped) {
		t.Errorf("skippedMetrics = %v, want %v", density.SkippedMetrics, wantSkipped)
	}
	if serving.Basis != domain.BasisPerServing {
		t.Errorf("serving basis = %s, want perServing", serving.Basis)
	}
}

func TestNormalizeBasisPartition(t *testing.T) {
	normalizer := NewDensityNormalizer()

	products := []struct {
		name       string
		product    *domain.Product
		isBeverage bool
	}{
		{"mass only", &domain.Product{Nutrition: fullNutrition(), ServingMassGrams: fptr(30)}, false},
		{"volume only", &domain.Product{Nutrition: fullNutrition(), ServingVolumeML: fptr(250)}, true},
		{"mass and volume", &domain.Product{Nutrition: fullNutrition(), ServingMassGrams: fptr(30), ServingVolumeML: fptr(30)}, false},
		{"neither", &domain.Product{Nutrition: fullNutrition()}, false},
		{"beverage mass only", &domain.Product{Nutrition: fullNutrition(), ServingMassGrams: fptr(355)}, true},
	}

	for _, tc := range products {
		t.Run(tc.name, func(t *testing.T) {
			density, _ := normalizer.Normalize(tc.product, tc.isBeverage)

			if got := len(density.AvailableMetrics) + len(density.SkippedMetrics); got != len(domain.AllBases) {
				t.Fatalf("available+skipped = %d bases, want %d", got, len(domain.AllBases))
			}
			seen := make(map[domain.Basis]bool)
			for _, b := range density.AvailableMetrics {
				seen[b] = true
			}
			for _, b := range density.SkippedMetrics {
				if seen[b] {
					t.Errorf("basis %s in both available and skipped", b)
				}
				seen[b] = true
			}
			for _, b := range domain.AllBases {
				if !seen[b] {
					t.Errorf("basis %s missing from partition", b)
				}
			}
		})
	}
}

func TestNormalizeConfidenceDowngrades(t *testing.T) {
	normalizer := NewDensityNormalizer()

	t.Run("one absent nutrient is medium", func(t *testing.T) {
		nutrition := fullNutrition()
		nutrition.Cholesterol = nil
		product := &domain.Product{Nutrition: nutrition, ServingMassGrams: fptr(30)}

		density, _ := normalizer.Normalize(product, false)
		if density.DataConfidence != domain.ConfidenceMedium {
			t.Errorf("confidence = %s, want medium", density.DataConfidence)
		}
	})

	t.Run("two absent nutrients is low", func(t *testing.T) {
		nutrition := fullNutrition()
		nutrition.Cholesterol = nil
		nutrition.Fiber = nil
		product := &domain.Product{Nutrition: nutrition, ServingMassGrams: fptr(30)}

		density, _ := normalizer.Normalize(product, false)
		if density.DataConfidence != domain.ConfidenceLow {
			t.Errorf("confidence = %s, want low", density.DataConfidence)
		}
	})
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func equalBases(got, want []domain.Basis) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
