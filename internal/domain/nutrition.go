package domain

// Basis identifies the reference quantity a nutrient snapshot is expressed against.
type Basis string

const (
	BasisPer100g    Basis = "per100g"
	BasisPer100ml   Basis = "per100ml"
	BasisPerServing Basis = "perServing"
)

// AllBases lists every density basis in canonical order.
// AvailableMetrics and SkippedMetrics always partition this set.
var AllBases = []Basis{BasisPer100g, BasisPer100ml, BasisPerServing}

// Confidence grades how trustworthy the normalized density data is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Normalization notes recorded by the density normalizer.
const (
	NoteDerivedFromLabelMass      = "derivedFromLabelMass"
	NoteDerivedFromLabelVolume    = "derivedFromLabelVolume"
	NoteFallbackPerServing        = "fallbackPerServing"
	NoteAssumedWaterDensity       = "assumedWaterDensity"
	NoteHouseholdMeasureNoDensity = "householdMeasureNoDensity"
)

// Missing-field names reported independently of confidence.
const (
	FieldServingMass        = "servingMass"
	FieldServingVolume      = "servingVolume"
	FieldServingDescription = "servingDescription"
)

// Snapshot holds nutrient amounts on a single basis.
// A nil field means the value was not on the label.
type Snapshot struct {
	Calories      *float64 `json:"calories,omitempty"`
	Protein       *float64 `json:"protein,omitempty"`       // grams
	Carbohydrates *float64 `json:"carbohydrates,omitempty"` // grams
	Fat           *float64 `json:"fat,omitempty"`           // grams
	SaturatedFat  *float64 `json:"saturatedFat,omitempty"`  // grams
	Fiber         *float64 `json:"fiber,omitempty"`         // grams
	Sugar         *float64 `json:"sugar,omitempty"`         // grams
	Sodium        *float64 `json:"sodium,omitempty"`        // grams
	Cholesterol   *float64 `json:"cholesterol,omitempty"`   // grams
}

// MissingCount returns how many nutrient fields are absent from the snapshot.
func (s *Snapshot) MissingCount() int {
	missing := 0
	for _, v := range []*float64{
		s.Calories, s.Protein, s.Carbohydrates, s.Fat,
		s.SaturatedFat, s.Fiber, s.Sugar, s.Sodium, s.Cholesterol,
	} {
		if v == nil {
			missing++
		}
	}
	return missing
}

// Scale returns a new snapshot with every present nutrient multiplied by factor.
func (s *Snapshot) Scale(factor float64) Snapshot {
	scale := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		scaled := *v * factor
		return &scaled
	}
	return Snapshot{
		Calories:      scale(s.Calories),
		Protein:       scale(s.Protein),
		Carbohydrates: scale(s.Carbohydrates),
		Fat:           scale(s.Fat),
		SaturatedFat:  scale(s.SaturatedFat),
		Fiber:         scale(s.Fiber),
		Sugar:         scale(s.Sugar),
		Sodium:        scale(s.Sodium),
		Cholesterol:   scale(s.Cholesterol),
	}
}

// NormalizedServing records what the normalizer could derive about one serving.
// At most one of mass/volume is authoritative for the chosen basis;
// MassOrVolumeMissing is true iff neither could be derived.
type NormalizedServing struct {
	Basis               Basis    `json:"basis"`
	MassGrams           *float64 `json:"massGrams,omitempty"`
	VolumeML            *float64 `json:"volumeMl,omitempty"`
	LabelText           string   `json:"labelText,omitempty"`
	MassOrVolumeMissing bool     `json:"massOrVolumeMissing"`
}

// NutritionDensity is the canonical output of the density normalizer:
// up to three snapshots (perServing always present), plus the metadata
// needed to explain how they were derived.
type NutritionDensity struct {
	PerServing Snapshot  `json:"perServing"`
	Per100g    *Snapshot `json:"per100g,omitempty"`
	Per100ml   *Snapshot `json:"per100ml,omitempty"`

	DataConfidence   Confidence `json:"dataConfidence"`
	MissingFields    []string   `json:"missingFields,omitempty"`
	Notes            []string   `json:"notes,omitempty"`
	AvailableMetrics []Basis    `json:"availableMetrics"`
	SkippedMetrics   []Basis    `json:"skippedMetrics,omitempty"`
}

// SnapshotFor returns the snapshot for the given basis, or nil if that
// basis was skipped.
func (d *NutritionDensity) SnapshotFor(basis Basis) *Snapshot {
	switch basis {
	case BasisPer100g:
		return d.Per100g
	case BasisPer100ml:
		return d.Per100ml
	case BasisPerServing:
		return &d.PerServing
	}
	return nil
}

// HasNote reports whether the given normalization note was recorded.
func (d *NutritionDensity) HasNote(note string) bool {
	for _, n := range d.Notes {
		if n == note {
			return true
		}
	}
	return false
}
