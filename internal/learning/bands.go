// Package learning updates the three condition-effect tables (rig_effects,
// zone_condition_effects, rig_condition_effects) from logged catches and
// serves their learned weights back to internal/scoring (spec §4.8).
package learning

import (
	"strings"

	"github.com/saaga0h/bayscan-engine/internal/rules"
)

// ClassifyTide bands a raw tide-stage string into incoming/outgoing/slack.
func ClassifyTide(tideStage string) string {
	lower := strings.ToLower(tideStage)
	switch {
	case lower == "":
		return "unknown"
	case strings.Contains(lower, "incoming") || strings.Contains(lower, "rising"):
		return "incoming"
	case strings.Contains(lower, "outgoing") || strings.Contains(lower, "falling"):
		return "outgoing"
	case strings.Contains(lower, "slack") || strings.Contains(lower, "high") || strings.Contains(lower, "low"):
		return "slack"
	default:
		return "unknown"
	}
}

// ClassifyClarity bands a raw clarity string into clean/stained/muddy,
// defaulting to clean when clarity is unknown.
func ClassifyClarity(clarity string) string {
	lower := strings.ToLower(clarity)
	switch {
	case lower == "":
		return "clean"
	case strings.Contains(lower, "muddy") || strings.Contains(lower, "dirty"):
		return "muddy"
	case strings.Contains(lower, "stained") || strings.Contains(lower, "off"):
		return "stained"
	default:
		return "clean"
	}
}

// ClassifyWind bands a wind direction as favorable/neutral/unfavorable for
// species, from that species' WindProfile.
func ClassifyWind(windDirection, species string) string {
	if windDirection == "" {
		return "neutral"
	}
	profile := rules.Profile(species)
	upper := strings.ToUpper(windDirection)

	for _, fav := range profile.Wind.FavorableDirections {
		if strings.Contains(upper, strings.ToUpper(fav)) {
			return "favorable"
		}
	}
	for _, unfav := range profile.Wind.UnfavorableDirections {
		if strings.Contains(upper, strings.ToUpper(unfav)) {
			return "unfavorable"
		}
	}
	return "neutral"
}

// ClassifyCurrent bands a current speed (mph) into low/medium/high.
func ClassifyCurrent(currentSpeedMph float64) string {
	switch {
	case currentSpeedMph <= 0:
		return "low"
	case currentSpeedMph < 0.3:
		return "low"
	case currentSpeedMph < 0.6:
		return "medium"
	default:
		return "high"
	}
}

// Conditions is the banding input shared by zone- and rig-condition
// updates, taken from the EnvironmentSnapshot active at catch time.
type Conditions struct {
	TideStage        string
	Clarity          string
	WindDirection    string
	CurrentSpeedMph  float64
}
