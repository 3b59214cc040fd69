package engine

import (
	"github.com/saaga0h/bayscan-engine/internal/learning"
	"github.com/saaga0h/bayscan-engine/internal/scoring"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// scoringConditions reduces a captured EnvironmentSnapshot to the fields
// internal/scoring's formulas read. TemperatureChange24hF, CurrentSpeedMph,
// PressureTrend, SolunarPeriod, and SalinityChange24hPPT have no source in
// EnvironmentSnapshot yet and are left at their zero values; the affected
// scoring sub-factors degrade to their neutral contribution rather than
// failing.
func scoringConditions(snap store.EnvironmentSnapshot) scoring.Conditions {
	return scoring.Conditions{
		WaterTempF:    snap.WaterTempF,
		TideStage:     snap.TideStage,
		WindSpeedMph:  snap.WindSpeedMph,
		WindDirection: snap.WindDirection,
		TimeOfDay:     snap.TimeOfDay,
		WaterClarity:  snap.Clarity,
		Salinity:      snap.Salinity,
	}
}

// learningConditions reduces a captured EnvironmentSnapshot to the banding
// inputs internal/learning needs. CurrentSpeedMph has no source in
// EnvironmentSnapshot yet and is left at zero.
func learningConditions(snap store.EnvironmentSnapshot) learning.Conditions {
	return learning.Conditions{
		TideStage:     snap.TideStage,
		Clarity:       snap.Clarity,
		WindDirection: snap.WindDirection,
	}
}
