// Package advanced implements the dock's supplementary current-conditions
// features: water clarity prediction, confidence scoring, rig/zone/pro-tip
// recommendations, and the cold-north-wind depth penalty, none of which
// feed the cached bite score itself but all of which decorate the
// GET /current response (spec §6, §7(h)).
package advanced

import "strings"

// northWindDirections are the cardinal directions treated as "from the
// north" for the cold-wind penalty.
var northWindDirections = map[string]bool{"N": true, "NNE": true, "NE": true, "NNW": true, "NW": true}

const coldTempThresholdF = 60.0
const shallowDepthThresholdFt = 6.0

// averageDockDepthFt is the dock's overall average depth, shallow enough
// that a north wind always triggers at least the moderate penalty.
const averageDockDepthFt = 4.5

func isNorthWind(windDirection string) bool {
	return northWindDirections[strings.ToUpper(windDirection)]
}

func isColdTemp(airTempF, waterTempF *float64) bool {
	if airTempF != nil && *airTempF <= coldTempThresholdF {
		return true
	}
	if waterTempF != nil && *waterTempF <= coldTempThresholdF {
		return true
	}
	return false
}

// HasStrongNorthWindPenalty reports whether a >=10mph north wind coincides
// with cold air or water temperature (spec §7(h)).
func HasStrongNorthWindPenalty(windDirection string, windSpeedMph float64, airTempF, waterTempF *float64) bool {
	if !isNorthWind(windDirection) {
		return false
	}
	if windSpeedMph < 10.0 {
		return false
	}
	return isColdTemp(airTempF, waterTempF)
}

// HasModerateNorthWindPenalty reports whether any north wind blows over
// the dock's shallow water, independent of speed or temperature.
func HasModerateNorthWindPenalty(windDirection string) bool {
	return isNorthWind(windDirection) && averageDockDepthFt < shallowDepthThresholdFt
}

// DepthShiftFt returns how many feet deeper a species is expected to hold
// under the current wind/temperature conditions.
func DepthShiftFt(species, windDirection string, windSpeedMph float64, airTempF, waterTempF *float64) int {
	if HasStrongNorthWindPenalty(windDirection, windSpeedMph, airTempF, waterTempF) {
		switch species {
		case "speckled_trout", "redfish", "mullet":
			return 3
		case "white_trout", "croaker", "blue_crab":
			return 2
		default:
			return 1
		}
	}
	if HasModerateNorthWindPenalty(windDirection) {
		switch species {
		case "speckled_trout", "redfish", "mullet":
			return 1
		default:
			return 0
		}
	}
	return 0
}

// ApplyDepthShift shifts a depth range deeper by shiftFt, capped at the
// dock's 7ft maximum.
func ApplyDepthShift(minFt, maxFt, shiftFt int) (int, int) {
	newMin := minFt + shiftFt
	newMax := maxFt + shiftFt
	if newMin > 7 {
		newMin = 7
	}
	if newMax > 7 {
		newMax = 7
	}
	return newMin, newMax
}

// DepthNote rewrites a species' depth behavior note for cold-north-wind
// conditions (spec §7(h): "modifies zone ranking and depth notes but never
// makes the score invalid").
func DepthNote(species, originalNote string, strongPenalty bool) string {
	if !strongPenalty {
		return strings.TrimRight(originalNote, ".") + " (pushed slightly deeper by north wind)"
	}
	switch species {
	case "speckled_trout", "redfish":
		return "Holding deeper along edges; shallow bite may be slow"
	case "black_drum", "flounder":
		return "Off the dock edge on the deeper side, not in skinniest water"
	case "white_trout", "croaker":
		return "Pushed deeper by cold north wind"
	default:
		return "Holding deeper than normal"
	}
}
