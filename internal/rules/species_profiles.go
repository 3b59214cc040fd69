package rules

import "time"

// TemperatureProfile bands a species' water-temperature preference.
type TemperatureProfile struct {
	IdealMinF             float64
	IdealMaxF             float64
	WorkableMinF          float64
	WorkableMaxF          float64
	BonusInIdeal          float64
	PenaltyOutOfWorkable  float64
	PenaltyColdSnap       float64 // 0 if the species has no distinct cold-snap penalty
}

// CurrentSpeedProfile bands a species' preferred current speed, in mph.
type CurrentSpeedProfile struct {
	IdealMinMph   float64
	IdealMaxMph   float64
	BonusMoving   float64
	PenaltySlack  float64
}

// WindProfile holds a species' wind direction and speed preference as one
// schema shared by every species (open question resolved in favor of a
// single Go type over separate favorable/unfavorable list shapes).
type WindProfile struct {
	FavorableDirections        []string
	UnfavorableDirections      []string
	LightIdealMaxMph           float64
	BonusFavorable             float64
	PenaltyUnfavorableStrong   float64
}

// PressureProfile bands barometric trend preference.
type PressureProfile struct {
	Falling    float64
	Stable     float64
	RisingSlow float64
	RisingFast float64
}

// SalinityProfile bands salinity tolerance, in ppt.
type SalinityProfile struct {
	PreferredMinPPT    float64
	PreferredMaxPPT    float64
	Tolerant           bool
	PenaltyRapidChange float64
}

// LightProfile captures dock-light and clarity-dependent night behavior.
type LightProfile struct {
	GreenLightNightBonus  float64
	RequiresDecentClarity bool
}

// SolunarProfile bands major/minor solunar period bonuses.
type SolunarProfile struct {
	Major float64
	Minor float64
}

// SpeciesProfile is the full behavior preference set for one species,
// applied by internal/subscore to compute sub-scores and by
// internal/scoring to assemble the bite score (spec §4.4, §4.5). Tier 2,
// bait, and predator species set only the fields that matter for them; the
// rest stay at zero value, contributing nothing to their (much simpler)
// scoring path.
type SpeciesProfile struct {
	Tier        int
	Name        string
	PeakMonths  []time.Month
	SpawnMonths []time.Month

	WaterTemp    TemperatureProfile
	TideStage    map[string]float64 // incoming, outgoing, high, low, slack
	CurrentSpeed CurrentSpeedProfile
	WaterClarity map[string]float64 // clear, slightly_stained, stained, muddy, chalky
	Wind         WindProfile
	Pressure     PressureProfile
	Salinity     SalinityProfile
	Structure    map[string]float64 // structure keyword -> bonus/penalty
	Light        LightProfile
	TimeOfDay    map[string]float64 // dawn, morning, midday, afternoon, evening, night
	Solunar      SolunarProfile

	CurrentStructureBonus float64 // extra bonus when moving current AND structure both present
	DepthPreference       string  // "deep" for species favoring Zone 5, "" otherwise
	PenaltyToPrey         float64 // predator species only; no scoring path reads it
}

// SpeciesProfiles is the master profile table, grounded on
// species_behavior_profiles.py. Tier 1 species carry comprehensive
// preferences; Tier 2, bait, and predator entries are intentionally sparse.
var SpeciesProfiles = map[string]SpeciesProfile{
	"speckled_trout": {
		Tier:        1,
		Name:        "Speckled Trout",
		PeakMonths:  months(3, 4, 5, 6, 7, 8, 9, 10),
		SpawnMonths: months(4, 5, 6, 7, 8, 9),
		WaterTemp: TemperatureProfile{
			IdealMinF: 65, IdealMaxF: 78, WorkableMinF: 58, WorkableMaxF: 85,
			BonusInIdeal: 5, PenaltyOutOfWorkable: -4,
		},
		TideStage: map[string]float64{"incoming": 4, "outgoing": 2, "high": 0, "low": 0, "slack": -4},
		CurrentSpeed: CurrentSpeedProfile{
			IdealMinMph: 0.3, IdealMaxMph: 1.5, BonusMoving: 3, PenaltySlack: -3,
		},
		WaterClarity: map[string]float64{
			"clear": 5, "slightly_stained": 2, "stained": -1, "muddy": -6, "chalky": -5,
		},
		Wind: WindProfile{
			FavorableDirections:      []string{"SE", "S", "SW", "E"},
			UnfavorableDirections:    []string{"N", "NW", "NE"},
			LightIdealMaxMph:         12,
			BonusFavorable:           3,
			PenaltyUnfavorableStrong: -4,
		},
		Pressure: PressureProfile{Falling: 3, Stable: 1, RisingSlow: 0, RisingFast: -3},
		Salinity: SalinityProfile{PreferredMinPPT: 15, PreferredMaxPPT: 30, Tolerant: true, PenaltyRapidChange: -2},
		Structure: map[string]float64{
			"grass_edges": 4, "pilings": 3, "drop_offs": 3, "current_seams": 4, "open_water": -1,
		},
		Light:     LightProfile{GreenLightNightBonus: 4, RequiresDecentClarity: true},
		TimeOfDay: map[string]float64{"dawn": 3, "morning": 2, "midday": 0, "afternoon": 1, "evening": 3, "night": 1},
		Solunar:   SolunarProfile{Major: 2, Minor: 1},
	},
	"redfish": {
		Tier:        1,
		Name:        "Redfish",
		PeakMonths:  months(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12),
		SpawnMonths: months(8, 9, 10, 11),
		WaterTemp: TemperatureProfile{
			IdealMinF: 65, IdealMaxF: 80, WorkableMinF: 55, WorkableMaxF: 88,
			BonusInIdeal: 4, PenaltyOutOfWorkable: -2,
		},
		TideStage: map[string]float64{"incoming": 5, "outgoing": 4, "high": 1, "low": -1, "slack": -5},
		CurrentSpeed: CurrentSpeedProfile{
			IdealMinMph: 0.4, IdealMaxMph: 2.0, BonusMoving: 4, PenaltySlack: -4,
		},
		WaterClarity: map[string]float64{
			"clear": 3, "slightly_stained": 3, "stained": 1, "muddy": -1, "chalky": -2,
		},
		Wind: WindProfile{
			FavorableDirections:      []string{"SE", "S", "SW"},
			UnfavorableDirections:    nil,
			LightIdealMaxMph:         15,
			BonusFavorable:           2,
			PenaltyUnfavorableStrong: -1,
		},
		Pressure: PressureProfile{Falling: 2, Stable: 1, RisingSlow: 0, RisingFast: -1},
		Salinity: SalinityProfile{PreferredMinPPT: 10, PreferredMaxPPT: 35, Tolerant: true, PenaltyRapidChange: -1},
		Structure: map[string]float64{
			"pilings": 5, "rubble": 5, "cuts": 4, "drains": 4, "grass_edges": 3, "open_water": -2,
		},
		Light:                 LightProfile{GreenLightNightBonus: 2, RequiresDecentClarity: false},
		TimeOfDay:             map[string]float64{"dawn": 3, "morning": 3, "midday": 1, "afternoon": 2, "evening": 3, "night": 2},
		Solunar:               SolunarProfile{Major: 2, Minor: 1},
		CurrentStructureBonus: 3,
	},
	"flounder": {
		Tier:        1,
		Name:        "Flounder",
		PeakMonths:  months(4, 5, 6, 7, 8, 9, 10),
		SpawnMonths: months(10, 11, 12),
		WaterTemp: TemperatureProfile{
			IdealMinF: 65, IdealMaxF: 75, WorkableMinF: 58, WorkableMaxF: 82,
			BonusInIdeal: 5, PenaltyOutOfWorkable: -5, PenaltyColdSnap: -7,
		},
		TideStage: map[string]float64{"incoming": 3, "outgoing": 4, "high": -1, "low": 0, "slack": -6},
		CurrentSpeed: CurrentSpeedProfile{
			IdealMinMph: 0.3, IdealMaxMph: 1.2, BonusMoving: 4, PenaltySlack: -5,
		},
		WaterClarity: map[string]float64{
			"clear": 6, "slightly_stained": 2, "stained": -2, "muddy": -7, "chalky": -6,
		},
		Wind: WindProfile{
			FavorableDirections:      []string{"SE", "S", "SW"},
			UnfavorableDirections:    []string{"N", "NW"},
			LightIdealMaxMph:         10,
			BonusFavorable:           2,
			PenaltyUnfavorableStrong: -5,
		},
		Pressure: PressureProfile{Falling: 3, Stable: 2, RisingSlow: 0, RisingFast: -4},
		Salinity: SalinityProfile{PreferredMinPPT: 18, PreferredMaxPPT: 32, Tolerant: false, PenaltyRapidChange: -3},
		Structure: map[string]float64{
			"rubble": 6, "sand_mud_transitions": 5, "piling_bases": 5, "drop_offs": 4, "open_water": -3,
		},
		Light:     LightProfile{GreenLightNightBonus: 3, RequiresDecentClarity: true},
		TimeOfDay: map[string]float64{"dawn": 4, "morning": 3, "midday": 0, "afternoon": 1, "evening": 4, "night": 2},
		Solunar:   SolunarProfile{Major: 2, Minor: 1},
	},
	"sheepshead": {
		Tier:        1,
		Name:        "Sheepshead",
		PeakMonths:  months(12, 1, 2, 3, 4),
		SpawnMonths: months(3, 4, 5),
		WaterTemp: TemperatureProfile{
			IdealMinF: 55, IdealMaxF: 70, WorkableMinF: 48, WorkableMaxF: 78,
			BonusInIdeal: 4, PenaltyOutOfWorkable: -3,
		},
		TideStage: map[string]float64{"incoming": 3, "outgoing": 3, "high": 1, "low": 1, "slack": -3},
		CurrentSpeed: CurrentSpeedProfile{
			IdealMinMph: 0.2, IdealMaxMph: 1.0, BonusMoving: 3, PenaltySlack: -2,
		},
		WaterClarity: map[string]float64{
			"clear": 5, "slightly_stained": 2, "stained": -1, "muddy": -4, "chalky": -4,
		},
		Wind: WindProfile{
			FavorableDirections:      nil,
			UnfavorableDirections:    nil,
			LightIdealMaxMph:         20,
			BonusFavorable:           1,
			PenaltyUnfavorableStrong: -1,
		},
		Pressure: PressureProfile{Falling: 2, Stable: 1, RisingSlow: 1, RisingFast: -1},
		Salinity: SalinityProfile{PreferredMinPPT: 15, PreferredMaxPPT: 32, Tolerant: true, PenaltyRapidChange: -1},
		Structure: map[string]float64{
			"pilings": 6, "barnacles": 6, "vertical_structure": 6, "rubble": 4, "open_water": -6,
		},
		Light:                 LightProfile{GreenLightNightBonus: 1, RequiresDecentClarity: false},
		TimeOfDay:             map[string]float64{"dawn": 3, "morning": 3, "midday": 2, "afternoon": 2, "evening": 2, "night": 0},
		Solunar:               SolunarProfile{Major: 1, Minor: 1},
		CurrentStructureBonus: 4,
	},
	"black_drum": {
		Tier:        1,
		Name:        "Black Drum",
		PeakMonths:  months(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12),
		SpawnMonths: months(3, 4, 5),
		WaterTemp: TemperatureProfile{
			IdealMinF: 60, IdealMaxF: 75, WorkableMinF: 50, WorkableMaxF: 85,
			BonusInIdeal: 3, PenaltyOutOfWorkable: -2,
		},
		TideStage: map[string]float64{"incoming": 2, "outgoing": 2, "high": 1, "low": 1, "slack": -2},
		CurrentSpeed: CurrentSpeedProfile{
			IdealMinMph: 0.2, IdealMaxMph: 1.2, BonusMoving: 2, PenaltySlack: -2,
		},
		WaterClarity: map[string]float64{
			"clear": 2, "slightly_stained": 2, "stained": 1, "muddy": 0, "chalky": -1,
		},
		Wind: WindProfile{
			FavorableDirections:      nil,
			UnfavorableDirections:    nil,
			LightIdealMaxMph:         18,
			BonusFavorable:           1,
			PenaltyUnfavorableStrong: 0,
		},
		Pressure: PressureProfile{Falling: 1, Stable: 1, RisingSlow: 0, RisingFast: 0},
		Salinity: SalinityProfile{PreferredMinPPT: 12, PreferredMaxPPT: 35, Tolerant: true, PenaltyRapidChange: 0},
		Structure: map[string]float64{
			"pilings": 4, "mud_bottom": 4, "rubble": 4, "deep_holes": 3, "open_water": -1,
		},
		Light:           LightProfile{GreenLightNightBonus: 1, RequiresDecentClarity: false},
		TimeOfDay:       map[string]float64{"dawn": 2, "morning": 2, "midday": 2, "afternoon": 2, "evening": 2, "night": 1},
		Solunar:         SolunarProfile{Major: 1, Minor: 1},
		DepthPreference: "deep",
	},

	// Tier 2 — simplified profiles; unset fields contribute nothing.
	"croaker": {
		Tier:      2,
		Name:      "Croaker",
		TideStage: map[string]float64{"incoming": 3, "outgoing": 3, "slack": -2},
		Structure: map[string]float64{"mud_bottom": 3, "current_edges": 3},
	},
	"white_trout": {
		Tier:         2,
		Name:         "White Trout",
		TimeOfDay:    map[string]float64{"evening": 4, "night": 5, "dawn": 2},
		Light:        LightProfile{GreenLightNightBonus: 6, RequiresDecentClarity: true},
		WaterClarity: map[string]float64{"clear": 4, "slightly_stained": 2, "muddy": -4},
	},

	// Bait species — sparse profiles. internal/scoring's bait path does not
	// read them; it uses its own bait condition rules.
	"menhaden": {
		Tier: 2, Name: "Menhaden / Pogies",
		Wind: WindProfile{FavorableDirections: []string{"SE", "S", "SW"}},
	},
	"mullet": {
		Tier: 2, Name: "Mullet",
		TideStage: map[string]float64{"incoming": 4},
	},
	"live_shrimp": {
		Tier: 2, Name: "Live Shrimp",
		Light:     LightProfile{GreenLightNightBonus: 8},
		TideStage: map[string]float64{"incoming": 5},
		WaterTemp: TemperatureProfile{IdealMinF: 65},
	},
	"fiddler_crab": {
		Tier: 2, Name: "Fiddler Crab",
		PeakMonths: months(12, 1, 2, 3),
	},

	// Predator — also listed in TierTwoSpecies, so it is forecast and scored
	// like the other Tier 2 species.
	"jack_crevalle": {
		Tier: 2, Name: "Jack Crevalle",
		PenaltyToPrey: -6,
	},
}

func months(m ...int) []time.Month {
	out := make([]time.Month, len(m))
	for i, v := range m {
		out[i] = time.Month(v)
	}
	return out
}

// Profile looks up a species' behavior profile, returning an empty
// (zero-value) profile for unrecognized species.
func Profile(species string) SpeciesProfile {
	return SpeciesProfiles[species]
}

// PreySpecies lists species subject to predator time-decay penalties.
var PreySpecies = []string{"speckled_trout", "white_trout", "menhaden", "mullet", "live_shrimp"}

// IsPreySpecies reports whether species is affected by nearby predator
// sightings (spec §4.4's predator penalty).
func IsPreySpecies(species string) bool {
	for _, p := range PreySpecies {
		if p == species {
			return true
		}
	}
	return false
}

// BaitTargets is the fixed bait_species → gamefish mapping a bait log
// recomputes bite scores for (spec §4.8), grounded on each bait's
// "best_for" list in bait_profiles.py.
var BaitTargets = map[string][]string{
	"live_shrimp":    {"speckled_trout", "redfish", "flounder", "sheepshead", "white_trout", "croaker"},
	"live_bait_fish": {"speckled_trout", "redfish", "flounder", "black_drum", "jack_crevalle", "shark"},
	"pinfish":        {"speckled_trout", "redfish", "flounder"},
	"menhaden":       {"speckled_trout", "redfish", "jack_crevalle", "mackerel"},
	"fiddler_crab":   {"sheepshead", "black_drum", "redfish"},
}
