package advanced

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// TopSpecies is one entry of the top-species list fed to BestZonesNow,
// carrying just enough to weight a zone recommendation.
type TopSpecies struct {
	Species string
	Tier    string // HOT, DECENT, SLOW, UNLIKELY
}

// PredictWaterClarity estimates clarity from wind, tide movement, and
// recent rain, matching the dock's original heuristic scoring.
func PredictWaterClarity(windSpeedMph, tideRateFtPerHr float64, recentRain bool) string {
	score := 10.0
	switch {
	case windSpeedMph > 15:
		score -= 4
	case windSpeedMph > 10:
		score -= 2
	case windSpeedMph > 5:
		score -= 1
	}

	abs := math.Abs(tideRateFtPerHr)
	switch {
	case abs > 1.5:
		score -= 3
	case abs > 0.8:
		score -= 1
	}

	if recentRain {
		score -= 3
	}

	switch {
	case score >= 7:
		return "Clear"
	case score >= 4:
		return "Lightly Stained"
	default:
		return "Muddy"
	}
}

// ClarityTip returns an actionable tip for the predicted water clarity.
func ClarityTip(clarity string) string {
	switch clarity {
	case "Clear":
		return "Downsize leader and lures."
	case "Lightly Stained":
		return "Balanced visibility - natural colors work well."
	case "Muddy":
		return "Use scent or noise-based baits."
	default:
		return "Normal conditions."
	}
}

// ConfidenceScore derives HIGH/MEDIUM/LOW forecast confidence from how
// stable pressure, wind, and tide have been (each a 0..1 stability score).
func ConfidenceScore(pressureStability, windStability, tidePredictability float64) string {
	avg := (pressureStability + windStability + tidePredictability) / 3
	switch {
	case avg >= 0.7:
		return "HIGH"
	case avg >= 0.4:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

var rigsBySpecies = map[string]map[string]string{
	"speckled_trout": {
		"shallow": "popping cork at 18-24 inches with live shrimp",
		"mid":     "slow-sink plastic on 1/8oz jighead",
		"deep":    "Carolina rig with live bait",
	},
	"redfish": {
		"shallow": "weedless gold spoon or soft plastic",
		"mid":     "1/4oz jig with paddle tail",
		"deep":    "cut bait on slip sinker rig",
	},
	"flounder": {
		"shallow": "slow drag with live finger mullet",
		"mid":     "Carolina rig with mud minnow",
		"deep":    "knocker rig with live shrimp",
	},
	"sheepshead": {
		"shallow": "sliding sinker rig with fiddler crab",
		"mid":     "drop shot with shrimp near pilings",
		"deep":    "tight-line rig at structure",
	},
	"black_drum": {
		"shallow": "slip float with blue crab",
		"mid":     "bottom rig with peeled shrimp",
		"deep":    "fishfinder rig with cut bait",
	},
}

// RigOfMoment recommends a rig for the most active species given current
// clarity, wind, tide, and depth.
func RigOfMoment(clarity string, windMph, tideSpeed float64, topSpecies string, depthMinFt, depthMaxFt int) string {
	movingTide := math.Abs(tideSpeed) > 0.5

	avgDepth := float64(depthMinFt+depthMaxFt) / 2
	depthCat := "deep"
	switch {
	case avgDepth <= 3:
		depthCat = "shallow"
	case avgDepth <= 5:
		depthCat = "mid"
	}

	baseRig := "1/4oz jig with soft plastic"
	if rigs, ok := rigsBySpecies[topSpecies]; ok {
		if r, ok := rigs[depthCat]; ok {
			baseRig = r
		}
	}

	clarityMod := ""
	switch {
	case clarity == "Muddy" && !strings.Contains(strings.ToLower(baseRig), "shrimp"):
		clarityMod = " (add scent)"
	case clarity == "Clear":
		clarityMod = " (downsize if needed)"
	}

	action := "Slow-drag"
	if movingTide {
		action = "Work"
	}

	return fmt.Sprintf("%s %s%s.", action, baseRig, clarityMod)
}

// BestZonesNow scores every dock zone against the top species, tide
// state, clarity, time of day, and any cold-north-wind penalty, returning
// up to 3 zone IDs ("Zone 1".."Zone 5") in priority order.
func BestZonesNow(topSpecies []TopSpecies, tideState, clarity, timeOfDay, windDirection string, windSpeedMph float64, airTempF, waterTempF *float64) []string {
	scores := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	scores[3] += 2
	scores[4] += 2

	if len(topSpecies) > 3 {
		topSpecies = topSpecies[:3]
	}
	for _, s := range topSpecies {
		weight := 1
		switch s.Tier {
		case "HOT":
			weight = 3
		case "DECENT":
			weight = 2
		}

		switch s.Species {
		case "sheepshead", "tripletail":
			scores[1] += weight * 2
			scores[3] += weight * 3
			scores[5] += weight * 4
		case "flounder", "black_drum":
			scores[1] += weight * 3
			scores[4] += weight * 2
			scores[5] += weight * 2
		case "speckled_trout":
			scores[2] += weight * 1
			scores[3] += weight * 3
			scores[4] += weight * 2
		case "redfish":
			scores[1] += weight * 3
			scores[2] += weight * 2
			scores[3] += weight * 2
		case "white_trout", "croaker", "jack_crevalle", "mackerel", "shark":
			scores[4] += weight * 2
			scores[5] += weight * 3
		case "mullet":
			scores[1] += weight * 2
			scores[2] += weight * 3
		case "blue_crab":
			scores[1] += weight * 2
			scores[3] += weight * 3
			scores[5] += weight * 2
		default:
			scores[3] += weight * 2
			scores[4] += weight * 2
		}
	}

	lowerTide := strings.ToLower(tideState)
	switch {
	case strings.Contains(lowerTide, "rising"):
		scores[1] += 3
		scores[2] += 3
		scores[3] += 1
	case strings.Contains(lowerTide, "falling"):
		scores[4] += 2
		scores[5] += 2
	}

	switch clarity {
	case "Clear":
		scores[4] += 1
		scores[5] += 2
	case "Muddy":
		scores[1] += 1
		scores[3] += 1
	}

	if timeOfDay == "evening" || timeOfDay == "night" {
		scores[4] += 4
	}

	if HasStrongNorthWindPenalty(windDirection, windSpeedMph, airTempF, waterTempF) {
		scores[1] -= 3
		scores[2] -= 4
		scores[4] += 2
		scores[5] += 3
	}

	type scored struct {
		zone  int
		score int
	}
	ranked := make([]scored, 0, len(scores))
	for zone, score := range scores {
		ranked = append(ranked, scored{zone, score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].zone < ranked[j].zone
	})

	result := make([]string, 0, 3)
	for _, r := range ranked {
		if r.score <= 0 || len(result) == 3 {
			break
		}
		result = append(result, fmt.Sprintf("Zone %d", r.zone))
	}
	return result
}

// ProTip generates a short contextual tip from bite tier, clarity, tide,
// wind, and time of day.
func ProTip(biteTier, clarity, tideState string, windMph float64, timeOfDay string) string {
	lowerTide := strings.ToLower(tideState)
	moving := strings.Contains(lowerTide, "rising") || strings.Contains(lowerTide, "falling")

	switch {
	case biteTier == "HOT" && moving:
		return "Fish are aggressive - cover water fast and target edges."
	case biteTier == "HOT":
		return "Even in slack, active fish will hit. Focus on structure."
	case biteTier == "DECENT" && clarity == "Clear":
		return "Fish can see well - use natural colors and light leaders."
	case biteTier == "DECENT" && clarity == "Muddy":
		return "Compensate for low visibility with vibration and scent."
	case windMph > 10:
		return "Choppy water can trigger bites - be patient and vary retrieve."
	case windMph < 4:
		return "Stealth is key - long casts and quiet presentations."
	case timeOfDay == "morning":
		return "First light often brings a feeding window - be ready early."
	case timeOfDay == "evening":
		return "Last light can turn on the bite - stay through dusk."
	default:
		return "Stay persistent and adjust based on what you're seeing."
	}
}

// CurrentStrength classifies a tide change rate into Weak/Moderate/Strong.
func CurrentStrength(tideRateFtPerHr float64) string {
	abs := math.Abs(tideRateFtPerHr)
	switch {
	case abs < 0.5:
		return "Weak"
	case abs < 1.2:
		return "Moderate"
	default:
		return "Strong"
	}
}

// MoonTideWindow describes the current moon-phase/tide-state interplay.
func MoonTideWindow(moonPhaseName, tideState, timeOfDay string) string {
	lower := strings.ToLower(moonPhaseName)
	effect := "normal tidal range"
	if strings.Contains(lower, "new") || strings.Contains(lower, "full") {
		effect = "strong tidal influence"
	}
	return fmt.Sprintf("%s moon with %s. %s tide during %s.",
		capitalizeWords(moonPhaseName), effect, capitalizeWords(tideState), timeOfDay)
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
