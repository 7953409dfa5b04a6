// Package lexicon provides a read-only ingredient/additive
// classification snapshot. The tables are compiled into the binary and
// the snapshot is explicitly constructed, never lazily initialized, so
// scoring determinism is never coupled to load timing.
package lexicon

import (
	"regexp"
	"sort"
	"strings"

	"github.com/labelscore/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	parentheticalRegex = regexp.MustCompile(`\([^)]*\)`)
	punctuationRegex   = regexp.MustCompile(`[^\w\s]`)
	multiSpaceRegex    = regexp.MustCompile(`\s+`)
)

// beneficialIngredients are whole-food terms with positive expected impact
var beneficialIngredients = map[string]bool{
	"oats": true, "whole wheat": true, "whole grain": true, "brown rice": true,
	"quinoa": true, "lentils": true, "chickpeas": true, "beans": true,
	"almonds": true, "walnuts": true, "cashews": true, "peanuts": true,
	"chia seeds": true, "flax seeds": true, "sunflower seeds": true,
	"apple": true, "apples": true, "banana": true, "strawberries": true,
	"blueberries": true, "spinach": true, "kale": true, "broccoli": true,
	"carrots": true, "tomatoes": true, "sweet potato": true,
	"olive oil": true, "avocado": true, "avocado oil": true,
	"greek yogurt": true, "yogurt": true, "milk": true, "eggs": true,
	"chicken": true, "turkey": true, "salmon": true, "tuna": true,
	"water": true, "sea salt": true, "honey": true,
}

// concerningIngredients are refined or high-risk terms
var concerningIngredients = map[string]bool{
	"sugar": true, "cane sugar": true, "brown sugar": true, "invert sugar": true,
	"corn syrup": true, "high fructose corn syrup": true, "glucose syrup": true,
	"fructose": true, "dextrose": true, "maltodextrin": true, "maltose": true,
	"palm oil": true, "palm kernel oil": true, "hydrogenated oil": true,
	"partially hydrogenated oil": true, "shortening": true, "margarine": true,
	"white flour": true, "enriched flour": true, "bleached flour": true,
	"enriched wheat flour": true, "refined wheat flour": true,
	"modified corn starch": true, "modified food starch": true,
}

// refinedOilTerms flag the refined-oil lens signal
var refinedOilTerms = map[string]bool{
	"canola oil": true, "soybean oil": true, "vegetable oil": true,
	"corn oil": true, "cottonseed oil": true, "sunflower oil": true,
	"safflower oil": true, "palm oil": true, "palm kernel oil": true,
	"hydrogenated oil": true, "partially hydrogenated oil": true,
}

// nonNutritiveSweeteners flag the sweetener lens signal
var nonNutritiveSweeteners = map[string]bool{
	"aspartame": true, "sucralose": true, "saccharin": true,
	"acesulfame potassium": true, "acesulfame k": true, "ace k": true,
	"neotame": true, "advantame": true, "stevia": true,
	"steviol glycosides": true, "erythritol": true, "xylitol": true,
	"sorbitol": true, "maltitol": true, "monk fruit extract": true,
}

// ultraProcessedMarkers flag industrial formulation ingredients rarely
// found in home kitchens
var ultraProcessedMarkers = map[string]bool{
	"maltodextrin": true, "soy protein isolate": true, "whey protein isolate": true,
	"hydrolyzed protein": true, "hydrolyzed soy protein": true,
	"interesterified fat": true, "glucose syrup": true,
	"high fructose corn syrup": true, "invert sugar": true,
	"flavoring": true, "natural flavors": true, "artificial flavors": true,
	"modified food starch": true, "modified corn starch": true,
}

// additiveEntry is one additive record in the lexicon.
type additiveEntry struct {
	id      string
	display string
	risk    domain.RiskLevel
}

// additives maps normalized additive names to their lexicon entries.
var additives = map[string]additiveEntry{
	// Colors
	"red 40":          {"additive.red_40", "Red 40", domain.RiskElevated},
	"allura red":      {"additive.red_40", "Red 40", domain.RiskElevated},
	"yellow 5":        {"additive.yellow_5", "Yellow 5", domain.RiskElevated},
	"tartrazine":      {"additive.yellow_5", "Yellow 5", domain.RiskElevated},
	"yellow 6":        {"additive.yellow_6", "Yellow 6", domain.RiskElevated},
	"blue 1":          {"additive.blue_1", "Blue 1", domain.RiskExpected},
	"caramel color":   {"additive.caramel_color", "Caramel Color", domain.RiskExpected},
	"titanium dioxide": {"additive.titanium_dioxide", "Titanium Dioxide", domain.RiskElevated},

	// Preservatives
	"bha":                {"additive.bha", "BHA", domain.RiskElevated},
	"bht":                {"additive.bht", "BHT", domain.RiskElevated},
	"tbhq":               {"additive.tbhq", "TBHQ", domain.RiskElevated},
	"sodium benzoate":    {"additive.sodium_benzoate", "Sodium Benzoate", domain.RiskExpected},
	"potassium sorbate":  {"additive.potassium_sorbate", "Potassium Sorbate", domain.RiskExpected},
	"sodium nitrite":     {"additive.sodium_nitrite", "Sodium Nitrite", domain.RiskElevated},
	"sodium nitrate":     {"additive.sodium_nitrate", "Sodium Nitrate", domain.RiskElevated},
	"calcium propionate": {"additive.calcium_propionate", "Calcium Propionate", domain.RiskExpected},

	// Emulsifiers and texturizers
	"carrageenan":          {"additive.carrageenan", "Carrageenan", domain.RiskElevated},
	"polysorbate 80":       {"additive.polysorbate_80", "Polysorbate 80", domain.RiskElevated},
	"soy lecithin":         {"additive.soy_lecithin", "Soy Lecithin", domain.RiskExpected},
	"sunflower lecithin":   {"additive.sunflower_lecithin", "Sunflower Lecithin", domain.RiskSupportive},
	"xanthan gum":          {"additive.xanthan_gum", "Xanthan Gum", domain.RiskExpected},
	"guar gum":             {"additive.guar_gum", "Guar Gum", domain.RiskExpected},
	"mono and diglycerides": {"additive.mono_diglycerides", "Mono- and Diglycerides", domain.RiskExpected},

	// Flavor enhancers
	"monosodium glutamate": {"additive.msg", "Monosodium Glutamate", domain.RiskExpected},
	"msg":                  {"additive.msg", "Monosodium Glutamate", domain.RiskExpected},
	"disodium inosinate":   {"additive.disodium_inosinate", "Disodium Inosinate", domain.RiskExpected},

	// Fortifiers
	"ascorbic acid":  {"additive.ascorbic_acid", "Ascorbic Acid (Vitamin C)", domain.RiskSupportive},
	"tocopherols":    {"additive.tocopherols", "Tocopherols (Vitamin E)", domain.RiskSupportive},
	"niacin":         {"additive.niacin", "Niacin", domain.RiskSupportive},
	"folic acid":     {"additive.folic_acid", "Folic Acid", domain.RiskSupportive},
	"ferrous sulfate": {"additive.ferrous_sulfate", "Ferrous Sulfate", domain.RiskSupportive},
}

// Snapshot is an immutable view over the lexicon tables.
type Snapshot struct{}

// NewSnapshot constructs the lexicon snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Classify turns a label-order ingredient list into classified
// ingredient hits, additive hits, and the derived boolean summary the
// scoring lens consumes.
func (s *Snapshot) Classify(ingredients []string) ([]domain.IngredientHit, []domain.AdditiveHit, domain.IngredientMatchResult) {
	var hits []domain.IngredientHit
	var additiveHits []domain.AdditiveHit
	var match domain.IngredientMatchResult

	for i, original := range ingredients {
		normalized := normalizeName(original)
		if normalized == "" {
			continue
		}

		hits = append(hits, domain.IngredientHit{
			OriginalName:   strings.TrimSpace(original),
			NormalizedName: normalized,
			Category:       categorize(normalized),
			Position:       i + 1,
		})

		if entry, ok := lookupAdditive(normalized); ok {
			additiveHits = append(additiveHits, domain.AdditiveHit{
				OriginalName:   strings.TrimSpace(original),
				DisplayName:    entry.display,
				NormalizedName: normalized,
				LexiconID:      entry.id,
				RiskLevel:      entry.risk,
			})
		}

		if containsTerm(normalized, refinedOilTerms) {
			match.ContainsRefinedOil = true
		}
		if containsTerm(normalized, nonNutritiveSweeteners) {
			match.ContainsNonNutritiveSweetener = true
		}
		if containsTerm(normalized, ultraProcessedMarkers) {
			match.ContainsUltraProcessedMarker = true
		}
	}

	return hits, additiveHits, match
}

// normalizeName lowercases an ingredient, strips parentheticals and
// punctuation, and collapses whitespace.
func normalizeName(name string) string {
	result := strings.ToLower(name)
	result = parentheticalRegex.ReplaceAllString(result, " ")
	result = punctuationRegex.ReplaceAllString(result, " ")
	result = multiSpaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// categorize classifies one normalized ingredient name. Exact table hits
// win; otherwise substring containment decides, concerning before
// beneficial so "sugar coated almonds" stays concerning.
func categorize(normalized string) domain.IngredientCategory {
	if concerningIngredients[normalized] {
		return domain.IngredientConcerning
	}
	if beneficialIngredients[normalized] {
		return domain.IngredientBeneficial
	}
	if containsTerm(normalized, concerningIngredients) {
		return domain.IngredientConcerning
	}
	if containsTerm(normalized, beneficialIngredients) {
		return domain.IngredientBeneficial
	}
	if _, ok := lookupAdditive(normalized); ok {
		return domain.IngredientNeutral
	}
	return domain.IngredientUnknown
}

// additiveTerms holds the additive table keys in sorted order so phrase
// lookups resolve the same entry on every run.
var additiveTerms = sortedKeys(additives)

func sortedKeys(table map[string]additiveEntry) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookupAdditive(normalized string) (additiveEntry, bool) {
	if entry, ok := additives[normalized]; ok {
		return entry, true
	}
	for _, term := range additiveTerms {
		if containsWholePhrase(normalized, term) {
			return additives[term], true
		}
	}
	return additiveEntry{}, false
}

// containsTerm reports whether any table term appears in the name as a
// whole phrase.
func containsTerm(normalized string, table map[string]bool) bool {
	if table[normalized] {
		return true
	}
	for term := range table {
		if containsWholePhrase(normalized, term) {
			return true
		}
	}
	return false
}

// containsWholePhrase matches term inside name on word boundaries, so
// "ace k" never matches inside "pancake mix".
func containsWholePhrase(name, term string) bool {
	idx := strings.Index(name, term)
	for idx >= 0 {
		beforeOK := idx == 0 || name[idx-1] == ' '
		after := idx + len(term)
		afterOK := after == len(name) || name[after] == ' '
		if beforeOK && afterOK {
			return true
		}
		next := strings.Index(name[idx+1:], term)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}
