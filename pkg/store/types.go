// Package store defines the persistence contract for the scoring & learning
// engine (spec §3) and a Postgres-backed implementation of it (spec §5: "All
// state lives in a single transactional store"). The engine's components
// (internal/...) depend only on the Store interface in interfaces.go, never
// on *sql.DB directly, so they can be exercised against an in-memory fake in
// tests.
package store

import "time"

// TideSample is one predicted or observed tide height reading.
type TideSample struct {
	ID            string
	Timestamp     time.Time
	HeightFt      float64
	ExtremumKind  string // "high", "low", or "" for none
	IsPrediction  bool
}

// WeatherObservation is a point-in-time weather reading (IsForecast=false)
// or a forecast row (IsForecast=true). Both share a shape per spec §3.
type WeatherObservation struct {
	ID                     string
	Timestamp              time.Time
	AirTempF               float64
	WindSpeedMph           float64
	WindDirectionCardinal  string
	WindGustMph            *float64
	PressureMb             float64
	Humidity               *float64
	CloudCover             string // "clear", "partly_cloudy", "overcast"
	PrecipitationProb      *float64
	ShortConditions        string
	IsForecast             bool
}

// AstronomicalDay holds sunrise/sunset/moon-phase facts for one calendar
// date, unique on Date.
type AstronomicalDay struct {
	Date          time.Time
	SunriseUTC    time.Time
	SunsetUTC     time.Time
	MoonPhase     float64
	MoonPhaseName string
}

// WaterTempReading is an observed water temperature, ingested as its own
// pipeline step distinct from air-temperature weather observations (spec
// §4.12).
type WaterTempReading struct {
	ID        string
	Timestamp time.Time
	TempF     float64
}

// MarineCondition is a marine-hazard reading.
type MarineCondition struct {
	ID            string
	Timestamp     time.Time
	WaveHeightFt  *float64
	SeaStateLabel string
	HazardLevel   string // "none", "caution", "dangerous"
	Advisories    []string
	SafetyScore   int // 0..100
	SafetyLevel   string // "safe", "caution", "unsafe"
}

// EnvironmentSnapshot is an immutable composite of all environmental
// readings at capture time, with derived fields.
type EnvironmentSnapshot struct {
	ID                 string
	CapturedAt         time.Time
	TideHeightFt        float64
	TideStage          string // incoming, outgoing, slack, high, low
	TideChangeRate     float64 // 0..1, normalized against 2 ft/hr
	AirTempF           float64
	WaterTempF         *float64
	WindSpeedMph       float64
	WindDirection      string
	WindGustMph        *float64
	PressureMb         float64
	CloudCover         string
	Clarity            string // clear, slightly_stained, stained (from the marine sea-state label)
	Salinity           *float64
	MoonPhase          float64
	MoonPhaseName      string
	TimeOfDay          string
	DockLightsOn       bool
}

// Catch is a user-logged catch event. Immutable once written; deletion does
// not retroactively alter learning tables (spec §3, §9).
type Catch struct {
	ID                      string
	Timestamp               time.Time
	Species                 string
	ZoneID                  string
	Quantity                int
	Kept                    bool
	RigType                 string
	BaitUsed                string
	SizeInches              *float64
	PredatorSeenRecently    bool
	DaysSinceLastChecked    *int // for traps
	Notes                   string
	SnapshotID              string // copy-by-reference to the snapshot at catch time
	Deleted                 bool
}

// BaitLog is a logged bait observation, parallel to Catch.
type BaitLog struct {
	ID               string
	Timestamp        time.Time
	BaitSpecies      string
	ZoneID           string
	QuantityEstimate string // none, few, plenty
	Method           string // cast_net, trap, ...
	SnapshotID       string
	Deleted          bool
}

// PredatorLog is a logged predator sighting, driving time-decayed prey
// penalties.
type PredatorLog struct {
	ID            string
	Timestamp     time.Time
	PredatorKind  string
	ZoneID        string
	Behavior      string
	TideStage     string
	Deleted       bool
}

// BiteScore is the cached, smoothed bite score for (Species, ZoneID).
type BiteScore struct {
	Species       string
	ZoneID        string
	Score         float64
	Rating        string // Poor, Fair, Good, Great, Excellent
	Confidence    string // low, medium, high
	ReasonSummary string
	LastUpdated   time.Time
}

// BaitScore is the cached score for (BaitSpecies, ZoneID).
type BaitScore struct {
	BaitSpecies   string
	ZoneID        string
	Score         float64
	Rating        string
	ReasonSummary string
	LastUpdated   time.Time
}

// RigEffect tracks which rig works for a (species, zone).
type RigEffect struct {
	Species      string
	ZoneID       string
	RigType      string
	SuccessCount float64
	Weight       float64 // min(3, ln(success_count+1))
	LastUsed     time.Time
}

// ZoneConditionEffect tracks which banded conditions work for a
// (species, zone).
type ZoneConditionEffect struct {
	Species      string
	ZoneID       string
	TideBand     string // incoming, outgoing, slack
	ClarityBand  string // clean, stained, muddy
	WindBand     string // favorable, neutral, unfavorable
	CurrentBand  string // low, medium, high
	SuccessCount float64
	Weight       float64 // min(4, ln(success_count+1))
}

// RigConditionEffect tracks which rig works under banded conditions,
// independent of zone.
type RigConditionEffect struct {
	Species      string
	RigType      string
	TideBand     string
	ClarityBand  string
	SuccessCount float64
	Weight       float64 // min(4, ln(success_count+1))
}

// SpeciesZoneTip is the generated recommendation for (species, zone).
type SpeciesZoneTip struct {
	Species     string
	ZoneID      string
	TipText     string
	LastUpdated time.Time
}

// ForecastWindow is a 2-hour window on the hour with per-species forecasts.
type ForecastWindow struct {
	ID    string
	Start time.Time
	End   time.Time
}

// SpeciesForecast is one species' forecast within a ForecastWindow.
type SpeciesForecast struct {
	WindowID      string
	Species       string
	IsRunning     bool
	RunningFactor float64
	BiteScore     float64
	BiteLabel     string // HOT, DECENT, SLOW, UNLIKELY
}

// Alert is a promoted hot-forecast-window record.
type Alert struct {
	ID          string
	Species     string
	WindowStart time.Time
	WindowEnd   time.Time
	BiteScore   float64
	Message     string
	IsActive    bool
	CreatedAt   time.Time
}

// Zone is a static dock-water rectangle with fixed geometry.
type Zone struct {
	ZoneID            string
	DepthBandMinFt    int
	DepthBandMaxFt    int
	HasPilings        bool
	HasCenterPilings  bool
	HasRubble         bool
	HasLight          bool
	HasOpenWater      bool
	Description       string
}
