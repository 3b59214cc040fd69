package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// BaitScoreResult is the raw (pre-smoothing) bait score plus its component
// breakdown (spec §4.6 bait path).
type BaitScoreResult struct {
	Score            float64
	SeasonalBaseline float64
	ConditionMatch   float64
	RecentActivity   float64
	LightModifier    float64
}

// CalculateBaitScore computes a zone's raw bait-presence score for
// baitSpecies at instant t (spec §4.6). The original source named this
// bait species list slightly differently across its seasonality table and
// its scoring service (live_bait_fish vs mud_minnows, fiddler_crab vs
// fiddler_crabs); this implementation standardizes on rules.BaitSpecies.
func CalculateBaitScore(ctx context.Context, s store.Store, baitSpecies, zoneID string, cond Conditions, t time.Time) (BaitScoreResult, error) {
	result := BaitScoreResult{
		SeasonalBaseline: rules.SeasonalBaseline(baitSpecies, t),
		ConditionMatch:   baitConditionMatch(baitSpecies, cond),
		LightModifier:    baitLightModifier(baitSpecies, cond.TimeOfDay),
	}

	activity, err := RecentBaitActivityModifier(ctx, s, baitSpecies, zoneID)
	if err != nil {
		return BaitScoreResult{}, fmt.Errorf("calculate bait score: %w", err)
	}
	result.RecentActivity = activity

	result.Score = clamp(result.SeasonalBaseline + result.ConditionMatch + result.RecentActivity + result.LightModifier)
	return result, nil
}

// baitConditionMatch branches per bait species the way the original
// source's per-species condition checks do: shrimp favor incoming tide and
// grass flats clarity, menhaden and mullet school on moving water, fiddler
// crabs are tied to mud-flat exposure at low tide.
func baitConditionMatch(baitSpecies string, cond Conditions) float64 {
	tide := strings.ToLower(cond.TideStage)
	clarity := cond.WaterClarity
	if clarity == "" {
		clarity = "slightly_stained"
	}
	clarity = strings.ToLower(clarity)

	var score float64
	switch baitSpecies {
	case "live_shrimp":
		if tide == "incoming" || tide == "high" {
			score += 3.0
		}
		if clarity == "clear" || clarity == "slightly_stained" {
			score += 2.0
		}
	case "menhaden":
		if cond.CurrentSpeedMph >= 0.2 && cond.CurrentSpeedMph <= 0.6 {
			score += 3.0
		}
	case "mullet":
		if tide == "outgoing" || tide == "falling" {
			score += 2.5
		}
		if clarity == "clear" {
			score += 1.5
		}
	case "fiddler_crab":
		if tide == "low" || tide == "outgoing" {
			score += 3.5
		}
	case "live_bait_fish":
		if cond.CurrentSpeedMph >= 0.2 && cond.CurrentSpeedMph <= 0.6 {
			score += 2.5
		}
	case "pinfish":
		if clarity == "clear" || clarity == "slightly_stained" {
			score += 2.0
		}
	}
	return score
}

// baitLightModifier gives dawn/dusk forage a small bonus, matching the
// original source's light-sensitive bait behavior.
func baitLightModifier(baitSpecies, timeOfDay string) float64 {
	switch strings.ToLower(timeOfDay) {
	case "dawn", "dusk":
		if baitSpecies == "live_shrimp" || baitSpecies == "menhaden" {
			return 1.5
		}
		return 1.0
	default:
		return 0
	}
}

// BaitTierLabel bands a bait score into the same five labels ScoreRating
// uses, but with the original source's get_tier_label_from_score boundary
// convention (score >= threshold) rather than ScoreRating's (score <=
// threshold) — the two disagree at the band edges by design.
func BaitTierLabel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Great"
	case score >= 40:
		return "Good"
	case score >= 20:
		return "Fair"
	default:
		return "Poor"
	}
}
