package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// BiteScoreResult is the raw (pre-smoothing) bite score plus the component
// breakdown the cache layer persists into BiteScore.ReasonSummary (spec
// §4.6, §4.9).
type BiteScoreResult struct {
	Score                float64
	SeasonalBaseline      float64
	ConditionMatch        float64
	StructureMatch        float64
	ClaritySalinity       float64
	RecentActivity        float64
	PredatorPenalty       float64
	ExternalIndicators    float64
	Confidence            ConfidenceResult
	Tier                  int
}

// CalculateBiteScore computes a zone's raw bite score for species at the
// instant t, reading recent catch/bait/predator activity from the store
// (spec §4.6). Tier 1 species get the full condition/structure/clarity
// formula; Tier 2 species get the simplified path: a tide+time-of-day
// condition match plus the structure match.
// The result is clamped to [0, 100].
func CalculateBiteScore(ctx context.Context, s store.Store, species, zoneID string, cond Conditions, t time.Time) (BiteScoreResult, error) {
	tier := rules.SpeciesTier(species)
	profile := rules.Profile(species)

	confidence, err := SpeciesZoneConfidence(ctx, s, species, zoneID)
	if err != nil {
		return BiteScoreResult{}, fmt.Errorf("calculate bite score: %w", err)
	}

	result := BiteScoreResult{
		SeasonalBaseline: rules.SeasonalBaseline(species, t),
		Confidence:       confidence,
		Tier:             tier,
	}

	if tier == 1 {
		result.ConditionMatch = ConditionMatch(profile, cond)
		result.StructureMatch = StructureMatch(profile, zoneID, cond)
		result.ClaritySalinity = ClaritySalinityModifier(profile, cond)

		activity, err := RecentActivityModifier(ctx, s, species, zoneID, confidence.Weight)
		if err != nil {
			return BiteScoreResult{}, fmt.Errorf("calculate bite score: %w", err)
		}
		result.RecentActivity = activity

		predator, err := PredatorModifier(ctx, s, species, zoneID)
		if err != nil {
			return BiteScoreResult{}, fmt.Errorf("calculate bite score: %w", err)
		}
		result.PredatorPenalty = predator

		// ExternalIndicators is a stable always-zero hook: the original
		// source's calculate_external_indicators_modifier is a literal
		// placeholder, never populated.
		result.ExternalIndicators = 0

		result.Score = clamp(result.SeasonalBaseline + result.ConditionMatch + result.StructureMatch +
			result.ClaritySalinity + result.RecentActivity + result.PredatorPenalty + result.ExternalIndicators)
		return result, nil
	}

	result.ConditionMatch = SimpleConditionMatch(profile, cond)
	result.StructureMatch = StructureMatch(profile, zoneID, cond)
	result.Score = clamp(result.SeasonalBaseline + result.ConditionMatch + result.StructureMatch)
	return result, nil
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

// ScoreRating bands a 0-100 score into the five display tiers (spec §4.9):
// Poor/Fair/Good/Great/Excellent. DECENT and SLOW from the original source
// map onto Good and Fair respectively (spec §9 open question #3).
func ScoreRating(score float64) string {
	switch {
	case score <= 20:
		return "Poor"
	case score <= 40:
		return "Fair"
	case score <= 60:
		return "Good"
	case score <= 80:
		return "Great"
	default:
		return "Excellent"
	}
}
