// Package scoring implements the bite-score and bait-score formulas (spec
// §4.5, §4.6): seasonal baseline plus environmental condition match,
// structure match, clarity/salinity modifier, recent-activity modifier, and
// predator modifier, clamped to 0-100.
package scoring

// Conditions is the environmental snapshot reduced to the fields the
// scoring formulas read, decoupled from pkg/store's persisted shape so this
// package has no storage dependency of its own.
type Conditions struct {
	WaterTempF             *float64
	TemperatureChange24hF  float64
	TideStage              string // incoming, outgoing, high, low, slack
	CurrentSpeedMph        float64
	WindSpeedMph           float64
	WindDirection          string
	PressureTrend          string // falling, stable, rising_slow, rising_fast
	TimeOfDay              string
	SolunarPeriod          string // major, minor, or "" for neither
	WaterClarity           string // clear, slightly_stained, stained, muddy, chalky
	Salinity               *float64
	SalinityChange24hPPT   float64
}
