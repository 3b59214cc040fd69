package store

import (
	"context"
	"time"
)

// Store is the single transactional persistence contract the engine depends
// on (spec §3, §5). A Postgres implementation lives in postgres.go; tests
// use an in-memory fake (memory.go) satisfying the same interface.
type Store interface {
	// Tide
	InsertTideSamples(ctx context.Context, samples []TideSample) error
	TideSamplesAround(ctx context.Context, t time.Time, window time.Duration) ([]TideSample, error)

	// Weather
	InsertWeatherObservation(ctx context.Context, obs WeatherObservation) error
	LatestWeatherObservation(ctx context.Context) (*WeatherObservation, error)
	LatestWeatherForecast(ctx context.Context, after time.Time) ([]WeatherObservation, error)

	// Astronomy
	UpsertAstronomicalDay(ctx context.Context, day AstronomicalDay) error
	AstronomicalDayFor(ctx context.Context, date time.Time) (*AstronomicalDay, error)

	// Water temperature
	InsertWaterTempReading(ctx context.Context, reading WaterTempReading) error
	LatestWaterTempReading(ctx context.Context) (*WaterTempReading, error)

	// Marine
	InsertMarineCondition(ctx context.Context, cond MarineCondition) error
	LatestMarineCondition(ctx context.Context) (*MarineCondition, error)

	// Snapshots
	InsertSnapshot(ctx context.Context, snap EnvironmentSnapshot) error
	LatestSnapshot(ctx context.Context) (*EnvironmentSnapshot, error)
	SnapshotWithinLast(ctx context.Context, d time.Duration) (bool, error)
	DeleteSnapshotsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Catches
	CreateCatch(ctx context.Context, c Catch) (Catch, error)
	DeleteCatch(ctx context.Context, id string) error
	CatchesSince(ctx context.Context, species, zoneID string, since time.Time) ([]Catch, error)
	CatchCount(ctx context.Context, species, zoneID string) (int, error)
	MostFrequentBait(ctx context.Context, species, zoneID string, since time.Time) (string, bool, error)
	RecentCatchZones(ctx context.Context, since time.Duration) ([]ZoneSpeciesPair, error)

	// Bait logs
	CreateBaitLog(ctx context.Context, b BaitLog) (BaitLog, error)
	DeleteBaitLog(ctx context.Context, id string) error
	BaitLogsSince(ctx context.Context, baitSpecies, zoneID string, since time.Time) ([]BaitLog, error)
	RecentBaitZones(ctx context.Context, since time.Duration) ([]ZoneSpeciesPair, error)

	// Predator logs
	CreatePredatorLog(ctx context.Context, p PredatorLog) (PredatorLog, error)
	DeletePredatorLog(ctx context.Context, id string) error
	LatestPredatorLog(ctx context.Context, zoneID string, since time.Time) (*PredatorLog, error)
	RecentPredatorZones(ctx context.Context, since time.Duration) ([]ZoneSpeciesPair, error)

	// Bite / bait score cache — writable only by internal/cache.
	GetBiteScore(ctx context.Context, species, zoneID string) (*BiteScore, error)
	UpsertBiteScore(ctx context.Context, s BiteScore) error
	GetBaitScore(ctx context.Context, baitSpecies, zoneID string) (*BaitScore, error)
	UpsertBaitScore(ctx context.Context, s BaitScore) error

	// Learning tables — writable only by internal/learning.
	GetRigEffect(ctx context.Context, species, zoneID, rigType string) (*RigEffect, error)
	UpsertRigEffect(ctx context.Context, e RigEffect) error
	BestRigEffect(ctx context.Context, species, zoneID string, minSuccessCount float64) (*RigEffect, error)

	GetZoneConditionEffect(ctx context.Context, species, zoneID, tideBand, clarityBand, windBand, currentBand string) (*ZoneConditionEffect, error)
	UpsertZoneConditionEffect(ctx context.Context, e ZoneConditionEffect) error
	DominantTideBand(ctx context.Context, species, zoneID string) (string, error)

	GetRigConditionEffect(ctx context.Context, species, rigType, tideBand, clarityBand string) (*RigConditionEffect, error)
	UpsertRigConditionEffect(ctx context.Context, e RigConditionEffect) error

	// Tips
	GetTip(ctx context.Context, species, zoneID string) (*SpeciesZoneTip, error)
	UpsertTip(ctx context.Context, t SpeciesZoneTip) error
	DeleteTip(ctx context.Context, species, zoneID string) error

	// Forecast windows
	ReplaceForecastWindows(ctx context.Context, windows []ForecastWindow, forecasts []SpeciesForecast) error
	ForecastWindowsFrom(ctx context.Context, start time.Time, count int) ([]ForecastWindow, error)
	SpeciesForecastsForWindow(ctx context.Context, windowID string) ([]SpeciesForecast, error)

	// Alerts
	UpsertAlert(ctx context.Context, a Alert) (Alert, error)
	ActiveAlert(ctx context.Context, species string, windowStart time.Time) (*Alert, error)
	DeactivateExpiredAlerts(ctx context.Context, now time.Time) (int64, error)
	ActiveAlerts(ctx context.Context) ([]Alert, error)

	// Zones — static, but fetched through the store so overlays (YAML) can
	// seed them at startup.
	Zones(ctx context.Context) ([]Zone, error)
	UpsertZone(ctx context.Context, z Zone) error

	// RunInTransaction executes fn against a Store bound to a single
	// transaction, satisfying spec §5's "every multi-row mutation is a
	// single transaction".
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// ZoneSpeciesPair names a (species, zone) pair with recent activity, used by
// the scheduler's periodic recalculation selection (spec §4.12).
type ZoneSpeciesPair struct {
	Species string
	ZoneID  string
}
