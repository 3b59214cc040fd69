package scoring

import (
	"strconv"
	"strings"

	"github.com/saaga0h/bayscan-engine/internal/rules"
)

// zoneNumber extracts the trailing zone number from an id like "Zone 3",
// defaulting to 3 (the dock's most-fished zone) when parsing fails.
func zoneNumber(zoneID string) int {
	parts := strings.Fields(zoneID)
	if len(parts) == 0 {
		return 3
	}
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 3
	}
	return n
}

// StructureMatch scores a species' structure preferences against one of the
// five dock zones' fixed geometry (spec §4.4, §4.5), including the Zone 4
// green-light night bonus and the Zone 5 dual-piling multiplier.
func StructureMatch(profile rules.SpeciesProfile, zoneID string, cond Conditions) float64 {
	num := zoneNumber(zoneID)
	structure := profile.Structure
	var score float64

	switch num {
	case 1:
		score += structure["pilings"] + structure["rubble"]
	case 2:
		score += structure["open_water"]
	case 3:
		score += structure["pilings"]
		score += 0.5
	case 4:
		timeOfDay := strings.ToLower(cond.TimeOfDay)
		clarity := cond.WaterClarity
		if clarity == "" {
			clarity = "slightly_stained"
		}
		if (timeOfDay == "evening" || timeOfDay == "night") && profile.Light != (rules.LightProfile{}) {
			bonus := profile.Light.GreenLightNightBonus
			if profile.Light.RequiresDecentClarity && strings.ToLower(clarity) == "muddy" {
				bonus *= 0.3
			}
			score += bonus
		}
		score += 0.5
	case 5:
		score += structure["pilings"] * 1.5
		if profile.DepthPreference == "deep" {
			score += 2.0
		}
	}

	if profile.CurrentStructureBonus != 0 && cond.CurrentSpeedMph > 0.3 && (num == 1 || num == 3 || num == 5) {
		score += profile.CurrentStructureBonus
	}

	return score
}
