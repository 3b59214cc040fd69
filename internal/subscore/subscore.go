// Package subscore implements the six pure, table-driven [0,1] sub-score
// functions the Forecast Window Builder combines into one environmental
// score per species (spec §4.4): tide, wind, temperature, pressure, moon,
// and cloud cover. Each takes a species (for its weighted preferences, via
// internal/rules) and a raw condition value, and never touches the store.
package subscore

import (
	"math"
	"strings"

	"github.com/saaga0h/bayscan-engine/internal/rules"
)

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Tide scores a tide state for species, favoring the bands the species'
// profile rates positively, and trusting the signal more as the tide
// moves faster (tideChangeRate ∈ [0,1]).
func Tide(species, tideState string, tideChangeRate float64) float64 {
	profile := rules.Profile(species)
	base := 0.5
	if profile.TideStage != nil {
		pref := profile.TideStage[strings.ToLower(tideState)]
		base = 0.5 + (pref/10.0)*clamp01(tideChangeRate)
	}
	return clamp01(base)
}

// Wind scores wind speed and direction for species: light wind within the
// species' ideal max is favorable, a favorable direction adds further, and
// an unfavorable direction above 15mph (the spec's strong-wind threshold)
// penalizes.
func Wind(species string, windSpeedMph float64, windDirection string) float64 {
	profile := rules.Profile(species)
	score := 0.5

	if profile.Wind.LightIdealMaxMph > 0 {
		if windSpeedMph <= profile.Wind.LightIdealMaxMph {
			score += 0.15
		} else {
			excess := windSpeedMph - profile.Wind.LightIdealMaxMph
			score -= clamp01(excess/20.0) * 0.3
		}
	}

	upper := strings.ToUpper(windDirection)
	if upper != "" {
		for _, fav := range profile.Wind.FavorableDirections {
			if strings.Contains(upper, strings.ToUpper(fav)) {
				score += 0.2
				break
			}
		}
		if windSpeedMph > 15 {
			for _, unfav := range profile.Wind.UnfavorableDirections {
				if strings.Contains(upper, strings.ToUpper(unfav)) {
					score -= 0.25
					break
				}
			}
		}
	}

	return clamp01(score)
}

// Temp scores water or air temperature for species against its
// ideal/workable bands: water temperature is preferred when present (spec
// §4.4).
func Temp(species string, airTempF float64, waterTempF *float64) float64 {
	profile := rules.Profile(species)
	prefs := profile.WaterTemp
	if prefs == (rules.TemperatureProfile{}) {
		return 0.5
	}

	t := airTempF
	if waterTempF != nil {
		t = *waterTempF
	}

	switch {
	case t >= prefs.IdealMinF && t <= prefs.IdealMaxF:
		return 1.0
	case t >= prefs.WorkableMinF && t <= prefs.WorkableMaxF:
		return 0.6
	default:
		var distance float64
		if t < prefs.WorkableMinF {
			distance = prefs.WorkableMinF - t
		} else {
			distance = t - prefs.WorkableMaxF
		}
		return clamp01(0.3 - distance/40.0)
	}
}

// Pressure scores a barometric trend for species using its pressure
// preference profile, same signed-value-to-[0,1] mapping as Tide.
func Pressure(species, trend string) float64 {
	profile := rules.Profile(species)
	if profile.Pressure == (rules.PressureProfile{}) {
		return 0.5
	}

	var pref float64
	switch strings.ToLower(trend) {
	case "falling":
		pref = profile.Pressure.Falling
	case "rising_slow":
		pref = profile.Pressure.RisingSlow
	case "rising_fast":
		pref = profile.Pressure.RisingFast
	default:
		pref = profile.Pressure.Stable
	}
	return clamp01(0.5 + pref/10.0)
}

// Moon scores a moon phase (0=new, 0.5=full, 1=new again) symmetrically:
// bite activity peaks at new and full moon and troughs at the quarters,
// matching the spec's "symmetric around new/full" requirement.
func Moon(moonPhase float64) float64 {
	phase := moonPhase - math.Floor(moonPhase)
	distToNew := math.Min(phase, 1-phase)
	distToFull := math.Abs(phase - 0.5)
	dist := math.Min(distToNew, distToFull)
	return clamp01(1 - dist/0.25)
}

// Cloud scores cloud cover: overcast and partly cloudy skies favor
// daytime feeding over harsh direct sun, matching the low-light bite
// preference already encoded in most species' light profiles.
func Cloud(cloudCover string) float64 {
	switch strings.ToLower(cloudCover) {
	case "overcast":
		return 0.8
	case "partly_cloudy":
		return 1.0
	case "clear":
		return 0.6
	default:
		return 0.7
	}
}

// Inputs bundles the raw readings the six sub-scores need, reduced from
// whatever snapshot/forecast window is active (spec §4.4).
type Inputs struct {
	TideState      string
	TideChangeRate float64
	WindSpeedMph   float64
	WindDirection  string
	AirTempF       float64
	WaterTempF     *float64
	PressureTrend  string
	MoonPhase      float64
	CloudCover     string
}

// EnvironmentalScore computes the weighted mean of all six sub-scores for
// species, using internal/rules.SpeciesEnvWeights for the per-species
// weights, clamped to [0,1] (spec §4.4).
func EnvironmentalScore(species string, in Inputs) float64 {
	w := rules.SpeciesEnvWeights(species)

	tide := Tide(species, in.TideState, in.TideChangeRate)
	wind := Wind(species, in.WindSpeedMph, in.WindDirection)
	temp := Temp(species, in.AirTempF, in.WaterTempF)
	pressure := Pressure(species, in.PressureTrend)
	moon := Moon(in.MoonPhase)
	cloud := Cloud(in.CloudCover)

	totalWeight := w.Tide + w.Wind + w.Temp + w.Pressure + w.Moon + w.Cloud
	if totalWeight == 0 {
		return 0.5
	}

	score := (w.Tide*tide + w.Wind*wind + w.Temp*temp + w.Pressure*pressure + w.Moon*moon + w.Cloud*cloud) / totalWeight
	return clamp01(score)
}
