package usecase

import (
	"fmt"

	"github.com/labelscore/backend/internal/domain"
)

// Guardrail rule identifiers, in evaluation order. The order is explicit
// and versioned so capsApplied output stays stable across releases.
const (
	RuleElevatedAdditive    = "guardrail.additive.elevated"
	RuleDominantConcerning  = "guardrail.ingredient.dominant_concerning"
	RuleExtremeSugarDensity = "guardrail.sugar.extreme_density"
	RuleSweetenerBeverage   = "guardrail.sweetener.beverage"
)

// guardrailRule is one independent cap check. A rule that fires yields a
// GuardrailCap with its severity tier and human-readable reason.
type guardrailRule struct {
	id       string
	tier     domain.Tier
	evaluate func(p *domain.NormalizedProduct, t ThresholdSet) (bool, string)
}

// guardrailRules holds every rule in evaluation order. All triggered
// caps are reported; the most restrictive tier wins, and between caps of
// equal tier the earlier rule in this list is the effective one.
var guardrailRules = []guardrailRule{
	{
		id:   RuleElevatedAdditive,
		tier: domain.TierOkay,
		evaluate: func(p *domain.NormalizedProduct, t ThresholdSet) (bool, string) {
			additive := firstElevatedAdditive(p.Additives)
			if additive == nil {
				return false, ""
			}
			if snap, _ := scoringSnapshot(p); snap.Fiber != nil && *snap.Fiber >= t.FiberCountervailMin {
				// A strong fiber signal offsets the additive risk.
				return false, ""
			}
			return true, fmt.Sprintf("contains %s, an additive with an elevated risk level", additive.DisplayName)
		},
	},
	{
		id:   RuleDominantConcerning,
		tier: domain.TierFair,
		evaluate: func(p *domain.NormalizedProduct, t ThresholdSet) (bool, string) {
			for _, hit := range p.Ingredients {
				if hit.Position == 1 && hit.Category == domain.IngredientConcerning {
					return true, fmt.Sprintf("%s is the dominant ingredient", hit.OriginalName)
				}
			}
			return false, ""
		},
	},
	{
		id:   RuleExtremeSugarDensity,
		tier: domain.TierOkay,
		evaluate: func(p *domain.NormalizedProduct, t ThresholdSet) (bool, string) {
			// Only fires on a true density basis; a perServing-only
			// fallback has no comparable per-100 figure.
			for _, basis := range []domain.Basis{domain.BasisPer100g, domain.BasisPer100ml} {
				snap := p.Density.SnapshotFor(basis)
				if snap == nil || snap.Sugar == nil {
					continue
				}
				if *snap.Sugar > t.SugarExtreme {
					return true, fmt.Sprintf("very high sugar density (%.0fg per 100)", *snap.Sugar)
				}
			}
			return false, ""
		},
	},
	{
		id:   RuleSweetenerBeverage,
		tier: domain.TierGood,
		evaluate: func(p *domain.NormalizedProduct, t ThresholdSet) (bool, string) {
			if p.IsBeverage && p.Match.ContainsNonNutritiveSweetener {
				return true, "beverage sweetened with a non-nutritive sweetener"
			}
			return false, ""
		},
	},
}

// EvaluateGuardrails runs every rule against the product and returns the
// triggered caps in evaluation order.
func EvaluateGuardrails(p *domain.NormalizedProduct, thresholds ThresholdSet) []domain.GuardrailCap {
	var caps []domain.GuardrailCap
	for _, rule := range guardrailRules {
		fired, reason := rule.evaluate(p, thresholds)
		if !fired {
			continue
		}
		caps = append(caps, domain.GuardrailCap{
			RuleID: rule.id,
			Tier:   rule.tier,
			Reason: reason,
		})
	}
	return caps
}

// EffectiveCap returns the cap that bounds the final tier: the most
// restrictive one, with ties going to the earliest-evaluated rule.
// Returns nil when no cap applies.
func EffectiveCap(caps []domain.GuardrailCap) *domain.GuardrailCap {
	var effective *domain.GuardrailCap
	for i := range caps {
		if effective == nil || caps[i].Tier.Rank() < effective.Tier.Rank() {
			effective = &caps[i]
		}
	}
	return effective
}

func firstElevatedAdditive(additives []domain.AdditiveHit) *domain.AdditiveHit {
	for i := range additives {
		if additives[i].RiskLevel == domain.RiskElevated {
			return &additives[i]
		}
	}
	return nil
}
