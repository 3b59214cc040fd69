package scoring

import (
	"strings"

	"github.com/saaga0h/bayscan-engine/internal/rules"
)

// ConditionMatch scores how well current conditions fit a Tier 1 species'
// full behavior profile: water temperature, tide stage, current speed,
// wind, pressure trend, time of day, and solunar period (spec §4.5).
func ConditionMatch(profile rules.SpeciesProfile, cond Conditions) float64 {
	var score float64

	if cond.WaterTempF != nil {
		temp := *cond.WaterTempF
		prefs := profile.WaterTemp
		switch {
		case temp >= prefs.IdealMinF && temp <= prefs.IdealMaxF:
			score += prefs.BonusInIdeal
		case temp < prefs.WorkableMinF || temp > prefs.WorkableMaxF:
			score += prefs.PenaltyOutOfWorkable
		}
		if prefs.PenaltyColdSnap != 0 && cond.TemperatureChange24hF < -10 {
			score += prefs.PenaltyColdSnap
		}
	}

	if profile.TideStage != nil {
		score += profile.TideStage[strings.ToLower(cond.TideStage)]
	}

	if profile.CurrentSpeed != (rulesZeroCurrentSpeed) {
		curr := profile.CurrentSpeed
		switch {
		case cond.CurrentSpeedMph >= curr.IdealMinMph && cond.CurrentSpeedMph <= curr.IdealMaxMph:
			score += curr.BonusMoving
		case cond.CurrentSpeedMph < 0.2:
			score += curr.PenaltySlack
		}
	}

	windDir := strings.ToUpper(cond.WindDirection)
	if windDir != "" && containsDirection(profile.Wind.FavorableDirections, windDir) {
		score += profile.Wind.BonusFavorable
	} else if windDir != "" && containsDirection(profile.Wind.UnfavorableDirections, windDir) && cond.WindSpeedMph > 15 {
		score += profile.Wind.PenaltyUnfavorableStrong
	}

	if profile.Pressure != (rules.PressureProfile{}) {
		score += pressureTrendValue(profile.Pressure, cond.PressureTrend)
	}

	if profile.TimeOfDay != nil {
		score += profile.TimeOfDay[strings.ToLower(cond.TimeOfDay)]
	}

	if cond.SolunarPeriod != "" && profile.Solunar != (rules.SolunarProfile{}) {
		if cond.SolunarPeriod == "major" {
			score += profile.Solunar.Major
		} else if cond.SolunarPeriod == "minor" {
			score += profile.Solunar.Minor
		}
	}

	score += coldNorthWindPenalty(profile, cond)

	return score
}

// coldNorthWindPenalty softens the condition match in proportion to how
// far a cold north wind has pushed the species off its usual holding
// depth; species already holding deep (DepthPreference "deep") are shifted
// less by the rule itself, so the remaining penalty here is a flat
// fraction of the shift.
func coldNorthWindPenalty(profile rules.SpeciesProfile, cond Conditions) float64 {
	// DepthShiftFt switches on species keys, not display names.
	species := ""
	for key, p := range rules.SpeciesProfiles {
		if p.Name == profile.Name {
			species = key
			break
		}
	}
	shift := rules.DepthShiftFt(species, cond.WindDirection, cond.WindSpeedMph, nil, cond.WaterTempF)
	return -float64(shift) * 0.5
}

// SimpleConditionMatch is the Tier 2 path: tide stage and time of day only.
func SimpleConditionMatch(profile rules.SpeciesProfile, cond Conditions) float64 {
	var score float64
	if profile.TideStage != nil {
		score += profile.TideStage[strings.ToLower(cond.TideStage)]
	}
	if profile.TimeOfDay != nil {
		score += profile.TimeOfDay[strings.ToLower(cond.TimeOfDay)]
	}
	return score
}

var rulesZeroCurrentSpeed rules.CurrentSpeedProfile

func containsDirection(directions []string, upperDir string) bool {
	for _, d := range directions {
		if strings.Contains(upperDir, strings.ToUpper(d)) {
			return true
		}
	}
	return false
}

func pressureTrendValue(p rules.PressureProfile, trend string) float64 {
	switch strings.ToLower(trend) {
	case "falling":
		return p.Falling
	case "rising_slow":
		return p.RisingSlow
	case "rising_fast":
		return p.RisingFast
	default:
		return p.Stable
	}
}

// ClaritySalinityModifier scores water clarity and salinity against a
// species' preferences (spec §4.5).
func ClaritySalinityModifier(profile rules.SpeciesProfile, cond Conditions) float64 {
	var score float64

	if profile.WaterClarity != nil {
		clarity := cond.WaterClarity
		if clarity == "" {
			clarity = "slightly_stained"
		}
		score += profile.WaterClarity[strings.ToLower(clarity)]
	}

	if cond.Salinity != nil && profile.Salinity != (rules.SalinityProfile{}) {
		sal := *cond.Salinity
		prefs := profile.Salinity
		outsideRange := sal < prefs.PreferredMinPPT || sal > prefs.PreferredMaxPPT
		if outsideRange && !prefs.Tolerant {
			score -= 2.0
		}
		if abs(cond.SalinityChange24hPPT) > 5 {
			score += prefs.PenaltyRapidChange
		}
	}

	return score
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
