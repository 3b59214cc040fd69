package cache

import (
	"fmt"
	"strings"

	"github.com/saaga0h/bayscan-engine/internal/scoring"
)

// BuildReasonSummary assembles a short, human-readable explanation for a
// cached score from its largest contributors, falling back to a plain
// seasonal-baseline statement when nothing else stands out (spec §4.9).
func BuildReasonSummary(cond scoring.Conditions, result scoring.BiteScoreResult, species, zoneID string) string {
	var reasons []string

	if result.RecentActivity >= 3 {
		reasons = append(reasons, fmt.Sprintf("+%d from recent catches in %s", int(result.RecentActivity), zoneID))
	}

	switch {
	case result.ConditionMatch >= 5:
		parts := []string{cond.TideStage, cond.WaterClarity + " water"}
		if cond.WaterTempF != nil {
			parts = append(parts, fmt.Sprintf("%d°F", int(*cond.WaterTempF)))
		}
		reasons = append(reasons, strings.TrimSpace(strings.Join(nonEmpty(parts), " ")))
	case result.ConditionMatch <= -5:
		reasons = append(reasons, fmt.Sprintf("unfavorable conditions (%s tide)", cond.TideStage))
	}

	if result.PredatorPenalty <= -3 {
		reasons = append(reasons, "recent predator activity")
	}

	switch {
	case result.SeasonalBaseline >= 70:
		reasons = append(reasons, "peak season")
	case result.SeasonalBaseline <= 30:
		reasons = append(reasons, "off-season")
	}

	if len(reasons) == 0 {
		return fmt.Sprintf("Seasonal baseline for %s in %s", species, zoneID)
	}

	summary := strings.Join(reasons, "; ")
	return strings.ToUpper(summary[:1]) + summary[1:]
}

func nonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// BuildBaitReasonSummary is the bait-score analogue: a compact two-number
// breakdown rather than a narrative summary, matching the original
// source's simpler bait reason string.
func BuildBaitReasonSummary(result scoring.BaitScoreResult) string {
	return fmt.Sprintf("Seasonal: %.0f, Conditions: %.0f", result.SeasonalBaseline, result.ConditionMatch)
}
