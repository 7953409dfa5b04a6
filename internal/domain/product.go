package domain

// Product is a raw food product as supplied by a catalog or client payload:
// per-serving nutrition plus whatever serving descriptors the label carried.
type Product struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"` // category slug, e.g. "soda", "snack-bars"

	Nutrition        Snapshot `json:"nutrition"` // per labeled serving
	ServingMassGrams *float64 `json:"servingMassGrams,omitempty"`
	ServingVolumeML  *float64 `json:"servingVolumeMl,omitempty"`
	ServingSizeText  string   `json:"servingSizeText,omitempty"` // e.g. "2 cookies (28 g)"

	Ingredients []string `json:"ingredients,omitempty"` // label order, dominant first
}

// IngredientCategory classifies an ingredient's expected health impact.
type IngredientCategory string

const (
	IngredientBeneficial IngredientCategory = "beneficial"
	IngredientNeutral    IngredientCategory = "neutral"
	IngredientConcerning IngredientCategory = "concerning"
	IngredientUnknown    IngredientCategory = "unknown"
)

// RiskLevel classifies an additive per the lexicon.
type RiskLevel string

const (
	RiskSupportive RiskLevel = "supportive"
	RiskExpected   RiskLevel = "expected"
	RiskElevated   RiskLevel = "elevated"
	RiskUnknown    RiskLevel = "unknown"
)

// IngredientHit is one classified ingredient from the lexicon.
// Position is 1-based label order; position 1 is the dominant ingredient by mass.
type IngredientHit struct {
	OriginalName   string             `json:"originalName"`
	NormalizedName string             `json:"normalizedName"`
	Category       IngredientCategory `json:"category"`
	Position       int                `json:"position"`
}

// AdditiveHit is one classified additive from the lexicon.
type AdditiveHit struct {
	OriginalName   string    `json:"originalName"`
	DisplayName    string    `json:"displayName"`
	NormalizedName string    `json:"normalizedName"`
	LexiconID      string    `json:"lexiconId,omitempty"`
	RiskLevel      RiskLevel `json:"riskLevel"`
}

// IngredientMatchResult is the lexicon's derived boolean summary.
// The scoring engine consumes it as-is and never re-derives it.
type IngredientMatchResult struct {
	ContainsRefinedOil            bool `json:"containsRefinedOil"`
	ContainsNonNutritiveSweetener bool `json:"containsNonNutritiveSweetener"`
	ContainsUltraProcessedMarker  bool `json:"containsUltraProcessedMarker"`
}

// AnySignal reports whether any ingredient-lens signal fired.
func (m IngredientMatchResult) AnySignal() bool {
	return m.ContainsRefinedOil || m.ContainsNonNutritiveSweetener || m.ContainsUltraProcessedMarker
}

// NormalizedProduct is the scoring engine's sole input. It is built once
// per scoring call and treated as immutable from then on.
type NormalizedProduct struct {
	Product      Product               `json:"product"`
	CategorySlug string                `json:"categorySlug"`
	IsBeverage   bool                  `json:"isBeverage"`
	Ingredients  []IngredientHit       `json:"ingredients,omitempty"`
	Additives    []AdditiveHit         `json:"additives,omitempty"`
	Match        IngredientMatchResult `json:"match"`
	Density      NutritionDensity      `json:"density"`
	Serving      NormalizedServing     `json:"serving"`

	// ConfidentCategory is true when the category slug classified the
	// product unambiguously rather than by inference.
	ConfidentCategory bool     `json:"confidentCategory"`
	SuggestedSwaps    []string `json:"suggestedSwaps,omitempty"`
}
