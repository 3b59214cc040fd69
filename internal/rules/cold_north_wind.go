package rules

import "strings"

// Cold north wind pushes dock-area gamefish out of the shallows: this file
// ports that cross-cutting rule, applied as a depth-shift hint layered on
// top of the per-species scoring in internal/scoring rather than folded
// into the profile tables themselves.

// NorthWindDirections are the cardinal directions treated as "north wind"
// for the cold-front penalty.
var NorthWindDirections = []string{"N", "NNE", "NE", "NNW", "NW"}

const ColdTempThresholdF = 60.0
const ShallowDepthThresholdFt = 6.0

// DockAverageDepthFt is the dock's average depth, used to decide whether
// the moderate (always-shallow) penalty applies.
const DockAverageDepthFt = 4.5

// IsNorthWind reports whether windDirection is one of the north-derived
// cardinal directions.
func IsNorthWind(windDirection string) bool {
	if windDirection == "" {
		return false
	}
	upper := strings.ToUpper(windDirection)
	for _, d := range NorthWindDirections {
		if d == upper {
			return true
		}
	}
	return false
}

// IsColdTemp reports whether either temperature reading is at or below the
// cold threshold. A nil reading is treated as not cold.
func IsColdTemp(airTempF, waterTempF *float64) bool {
	if airTempF != nil && *airTempF <= ColdTempThresholdF {
		return true
	}
	if waterTempF != nil && *waterTempF <= ColdTempThresholdF {
		return true
	}
	return false
}

// HasStrongNorthWindPenalty reports whether wind speed and cold
// temperatures combine with a north wind into the strong depth-shift case
// (>= 10 mph, air or water at or below 60F).
func HasStrongNorthWindPenalty(windDirection string, windSpeedMph float64, airTempF, waterTempF *float64) bool {
	if !IsNorthWind(windDirection) {
		return false
	}
	if windSpeedMph < 10.0 {
		return false
	}
	return IsColdTemp(airTempF, waterTempF)
}

// HasModerateNorthWindPenalty reports whether any north wind applies at the
// dock's shallow average depth, regardless of speed or temperature.
func HasModerateNorthWindPenalty(windDirection string) bool {
	if !IsNorthWind(windDirection) {
		return false
	}
	return DockAverageDepthFt < ShallowDepthThresholdFt
}

// DepthShiftFt returns how many feet deeper species should be expected to
// hold under cold north wind conditions: 0 when no penalty applies, 1-3
// under the strong penalty banded by how shallow-dwelling the species
// normally is, or a smaller shift under the moderate penalty.
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

// ApplyDepthShift shifts a [min, max] depth range deeper by shiftFt,
// capping both bounds at the dock's maximum fishable depth of 7ft.
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

// ColdNorthWindDepthNote returns a species-appropriate note describing how
// cold north wind has changed where the species is holding.
func ColdNorthWindDepthNote(species, originalNote string, strongPenalty bool) string {
	if strongPenalty {
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
	return strings.TrimRight(originalNote, ".") + " (pushed slightly deeper by north wind)"
}
