package subscore

import "testing"

func TestTide_FavorsPositivePreferenceWithRate(t *testing.T) {
	fastIncoming := Tide("speckled_trout", "incoming", 1.0)
	slowIncoming := Tide("speckled_trout", "incoming", 0.1)
	if fastIncoming <= slowIncoming {
		t.Errorf("expected a faster tide to push the favorable score higher: fast=%f slow=%f", fastIncoming, slowIncoming)
	}
	slack := Tide("speckled_trout", "slack", 1.0)
	if slack >= 0.5 {
		t.Errorf("expected slack tide (negative preference) to score below neutral, got %f", slack)
	}
}

func TestTide_UnknownSpeciesIsNeutral(t *testing.T) {
	if got := Tide("unknown_species", "incoming", 1.0); got != 0.5 {
		t.Errorf("expected neutral 0.5 for a species with no tide profile, got %f", got)
	}
}

func TestWind_LightWindWithinIdealScoresHigherThanExcess(t *testing.T) {
	light := Wind("speckled_trout", 8, "")
	heavy := Wind("speckled_trout", 30, "")
	if light <= heavy {
		t.Errorf("expected light wind to score higher than a heavy excess: light=%f heavy=%f", light, heavy)
	}
}

func TestWind_FavorableDirectionBoosts(t *testing.T) {
	favorable := Wind("speckled_trout", 8, "SE")
	noDirection := Wind("speckled_trout", 8, "")
	if favorable <= noDirection {
		t.Errorf("expected a favorable direction to add to the score: favorable=%f none=%f", favorable, noDirection)
	}
}

func TestWind_UnfavorableDirectionAboveThresholdPenalizes(t *testing.T) {
	strongUnfavorable := Wind("speckled_trout", 20, "NW")
	strongNeutral := Wind("speckled_trout", 20, "")
	if strongUnfavorable >= strongNeutral {
		t.Errorf("expected an unfavorable direction above 15mph to penalize: unfavorable=%f neutral=%f",
			strongUnfavorable, strongNeutral)
	}
}

func TestTemp_IdealBandScoresMax(t *testing.T) {
	if got := Temp("speckled_trout", 70, nil); got != 1.0 {
		t.Errorf("expected ideal-band air temp to score 1.0, got %f", got)
	}
}

func TestTemp_PrefersWaterTempWhenPresent(t *testing.T) {
	water := 70.0
	got := Temp("speckled_trout", 40, &water)
	if got != 1.0 {
		t.Errorf("expected water temp to override a cold air reading, got %f", got)
	}
}

func TestTemp_OutsideWorkableBandDecaysWithDistance(t *testing.T) {
	near := Temp("speckled_trout", 50, nil)
	far := Temp("speckled_trout", 20, nil)
	if far >= near {
		t.Errorf("expected a farther-out-of-band temp to score lower: near=%f far=%f", near, far)
	}
}

func TestTemp_UnknownSpeciesIsNeutral(t *testing.T) {
	if got := Temp("unknown_species", 70, nil); got != 0.5 {
		t.Errorf("expected neutral 0.5 for a species with no temperature profile, got %f", got)
	}
}

func TestPressure_FallingVsRisingFast(t *testing.T) {
	falling := Pressure("speckled_trout", "falling")
	risingFast := Pressure("speckled_trout", "rising_fast")
	if falling <= risingFast {
		t.Errorf("expected falling pressure to score above rising fast for speckled_trout: falling=%f risingFast=%f",
			falling, risingFast)
	}
}

func TestPressure_UnknownSpeciesIsNeutral(t *testing.T) {
	if got := Pressure("unknown_species", "falling"); got != 0.5 {
		t.Errorf("expected neutral 0.5 for a species with no pressure profile, got %f", got)
	}
}

func TestMoon_PeaksAtNewAndFull(t *testing.T) {
	newMoon := Moon(0.0)
	fullMoon := Moon(0.5)
	quarter := Moon(0.25)
	if newMoon != 1.0 || fullMoon != 1.0 {
		t.Errorf("expected new and full moon to both score 1.0, got new=%f full=%f", newMoon, fullMoon)
	}
	if quarter >= newMoon {
		t.Errorf("expected a quarter moon to score below new/full, got %f", quarter)
	}
}

func TestCloud_PartlyCloudyBeatsClear(t *testing.T) {
	if got := Cloud("partly_cloudy"); got != 1.0 {
		t.Errorf("expected partly_cloudy to score 1.0, got %f", got)
	}
	if got := Cloud("clear"); got != 0.6 {
		t.Errorf("expected clear to score 0.6, got %f", got)
	}
}

func TestEnvironmentalScore_WithinBounds(t *testing.T) {
	in := Inputs{
		TideState:      "incoming",
		TideChangeRate: 0.8,
		WindSpeedMph:   10,
		WindDirection:  "SE",
		AirTempF:       75,
		PressureTrend:  "falling",
		MoonPhase:      0.5,
		CloudCover:     "partly_cloudy",
	}
	got := EnvironmentalScore("speckled_trout", in)
	if got < 0 || got > 1 {
		t.Fatalf("expected score in [0,1], got %f", got)
	}
	if got < 0.7 {
		t.Errorf("expected favorable inputs to score well above neutral, got %f", got)
	}
}

func TestEnvironmentalScore_UnknownSpeciesUsesDefaultWeights(t *testing.T) {
	in := Inputs{TideState: "slack", MoonPhase: 0.25, CloudCover: "clear"}
	got := EnvironmentalScore("totally_unknown", in)
	if got < 0 || got > 1 {
		t.Fatalf("expected score in [0,1], got %f", got)
	}
}
