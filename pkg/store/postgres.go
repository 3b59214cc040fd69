package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// execer is satisfied by both *sql.DB and *sql.Tx, letting every query
// method below run unmodified whether or not it's inside RunInTransaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PostgresStore implements Store against a *sql.DB using raw SQL, mirroring
// the teacher's anchor_storage.go idiom (no ORM, $N placeholders, manual
// Scan). The pgvector column on environment_snapshots is a small 6-dimension
// deterministic feature embedding (tide height, tide rate, wind speed,
// pressure, cloud cover code, moon phase) used only for FindSimilarConditions
// lookups, never for clustering or prediction (spec's machine-learning
// Non-goal).
type PostgresStore struct {
	rawDB *sql.DB // used only to open new transactions
	db    execer  // *rawDB normally, or a *sql.Tx when bound by RunInTransaction
}

// NewPostgresStore wraps an open *sql.DB. Schema migrations are expected to
// have already run; this package does not manage DDL.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{rawDB: db, db: db}
}

func newID() string { return uuid.NewString() }

// --- Tide ---

func (s *PostgresStore) InsertTideSamples(ctx context.Context, samples []TideSample) error {
	return s.RunInTransaction(ctx, func(ctx context.Context, tx Store) error {
		txStore := tx.(*PostgresStore)
		for _, sample := range samples {
			if sample.ID == "" {
				sample.ID = newID()
			}
			_, err := txStore.db.ExecContext(ctx, `
				INSERT INTO tide_samples (id, timestamp, height_ft, extremum_kind, is_prediction)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (id) DO NOTHING
			`, sample.ID, sample.Timestamp, sample.HeightFt, sample.ExtremumKind, sample.IsPrediction)
			if err != nil {
				return fmt.Errorf("insert tide sample: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) TideSamplesAround(ctx context.Context, t time.Time, window time.Duration) ([]TideSample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, height_ft, extremum_kind, is_prediction
		FROM tide_samples
		WHERE timestamp BETWEEN $1 AND $2
		ORDER BY timestamp ASC
	`, t.Add(-window), t.Add(window))
	if err != nil {
		return nil, fmt.Errorf("query tide samples: %w", err)
	}
	defer rows.Close()

	var out []TideSample
	for rows.Next() {
		var ts TideSample
		if err := rows.Scan(&ts.ID, &ts.Timestamp, &ts.HeightFt, &ts.ExtremumKind, &ts.IsPrediction); err != nil {
			return nil, fmt.Errorf("scan tide sample: %w", err)
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

// --- Weather ---

func (s *PostgresStore) InsertWeatherObservation(ctx context.Context, obs WeatherObservation) error {
	if obs.ID == "" {
		obs.ID = newID()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weather_observations (
			id, timestamp, air_temp_f, wind_speed_mph, wind_direction_cardinal, wind_gust_mph,
			pressure_mb, humidity, cloud_cover, precipitation_prob, short_conditions, is_forecast
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`, obs.ID, obs.Timestamp, obs.AirTempF, obs.WindSpeedMph, obs.WindDirectionCardinal, obs.WindGustMph,
		obs.PressureMb, obs.Humidity, obs.CloudCover, obs.PrecipitationProb, obs.ShortConditions, obs.IsForecast)
	if err != nil {
		return fmt.Errorf("insert weather observation: %w", err)
	}
	return nil
}

func (s *PostgresStore) LatestWeatherObservation(ctx context.Context) (*WeatherObservation, error) {
	return s.scanOneWeather(ctx, `
		SELECT id, timestamp, air_temp_f, wind_speed_mph, wind_direction_cardinal, wind_gust_mph,
			pressure_mb, humidity, cloud_cover, precipitation_prob, short_conditions, is_forecast
		FROM weather_observations
		WHERE is_forecast = false
		ORDER BY timestamp DESC
		LIMIT 1
	`)
}

func (s *PostgresStore) LatestWeatherForecast(ctx context.Context, after time.Time) ([]WeatherObservation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, air_temp_f, wind_speed_mph, wind_direction_cardinal, wind_gust_mph,
			pressure_mb, humidity, cloud_cover, precipitation_prob, short_conditions, is_forecast
		FROM weather_observations
		WHERE is_forecast = true AND timestamp >= $1
		ORDER BY timestamp ASC
	`, after)
	if err != nil {
		return nil, fmt.Errorf("query weather forecast: %w", err)
	}
	defer rows.Close()

	var out []WeatherObservation
	for rows.Next() {
		var w WeatherObservation
		if err := rows.Scan(&w.ID, &w.Timestamp, &w.AirTempF, &w.WindSpeedMph, &w.WindDirectionCardinal,
			&w.WindGustMph, &w.PressureMb, &w.Humidity, &w.CloudCover, &w.PrecipitationProb,
			&w.ShortConditions, &w.IsForecast); err != nil {
			return nil, fmt.Errorf("scan weather forecast: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *PostgresStore) scanOneWeather(ctx context.Context, query string, args ...interface{}) (*WeatherObservation, error) {
	var w WeatherObservation
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&w.ID, &w.Timestamp, &w.AirTempF, &w.WindSpeedMph, &w.WindDirectionCardinal, &w.WindGustMph,
		&w.PressureMb, &w.Humidity, &w.CloudCover, &w.PrecipitationProb, &w.ShortConditions, &w.IsForecast,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query weather observation: %w", err)
	}
	return &w, nil
}

// --- Astronomy ---

func (s *PostgresStore) UpsertAstronomicalDay(ctx context.Context, day AstronomicalDay) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO astronomical_days (date, sunrise_utc, sunset_utc, moon_phase, moon_phase_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date) DO UPDATE SET
			sunrise_utc = EXCLUDED.sunrise_utc,
			sunset_utc = EXCLUDED.sunset_utc,
			moon_phase = EXCLUDED.moon_phase,
			moon_phase_name = EXCLUDED.moon_phase_name
	`, day.Date, day.SunriseUTC, day.SunsetUTC, day.MoonPhase, day.MoonPhaseName)
	if err != nil {
		return fmt.Errorf("upsert astronomical day: %w", err)
	}
	return nil
}

func (s *PostgresStore) AstronomicalDayFor(ctx context.Context, date time.Time) (*AstronomicalDay, error) {
	var d AstronomicalDay
	err := s.db.QueryRowContext(ctx, `
		SELECT date, sunrise_utc, sunset_utc, moon_phase, moon_phase_name
		FROM astronomical_days
		WHERE date = $1
	`, date.Truncate(24*time.Hour)).Scan(&d.Date, &d.SunriseUTC, &d.SunsetUTC, &d.MoonPhase, &d.MoonPhaseName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query astronomical day: %w", err)
	}
	return &d, nil
}

// --- Water temperature ---

func (s *PostgresStore) InsertWaterTempReading(ctx context.Context, reading WaterTempReading) error {
	if reading.ID == "" {
		reading.ID = newID()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO water_temp_readings (id, timestamp, temp_f)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, reading.ID, reading.Timestamp, reading.TempF)
	if err != nil {
		return fmt.Errorf("insert water temp reading: %w", err)
	}
	return nil
}

func (s *PostgresStore) LatestWaterTempReading(ctx context.Context) (*WaterTempReading, error) {
	var r WaterTempReading
	err := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, temp_f FROM water_temp_readings ORDER BY timestamp DESC LIMIT 1
	`).Scan(&r.ID, &r.Timestamp, &r.TempF)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest water temp reading: %w", err)
	}
	return &r, nil
}

// --- Marine ---

func (s *PostgresStore) InsertMarineCondition(ctx context.Context, cond MarineCondition) error {
	if cond.ID == "" {
		cond.ID = newID()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO marine_conditions (
			id, timestamp, wave_height_ft, sea_state_label, hazard_level, advisories, safety_score, safety_level
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`, cond.ID, cond.Timestamp, cond.WaveHeightFt, cond.SeaStateLabel, cond.HazardLevel,
		pq.Array(cond.Advisories), cond.SafetyScore, cond.SafetyLevel)
	if err != nil {
		return fmt.Errorf("insert marine condition: %w", err)
	}
	return nil
}

func (s *PostgresStore) LatestMarineCondition(ctx context.Context) (*MarineCondition, error) {
	var m MarineCondition
	err := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, wave_height_ft, sea_state_label, hazard_level, advisories, safety_score, safety_level
		FROM marine_conditions
		ORDER BY timestamp DESC
		LIMIT 1
	`).Scan(&m.ID, &m.Timestamp, &m.WaveHeightFt, &m.SeaStateLabel, &m.HazardLevel,
		pq.Array(&m.Advisories), &m.SafetyScore, &m.SafetyLevel)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query marine condition: %w", err)
	}
	return &m, nil
}

// --- Snapshots ---

// snapshotEmbedding builds the 6-dimension deterministic feature vector used
// for FindSimilarConditions. It is not learned and carries no weights beyond
// a fixed per-field scale, keeping it outside the machine-learning Non-goal.
func snapshotEmbedding(snap EnvironmentSnapshot) pgvector.Vector {
	cloudCode := map[string]float32{"clear": 0, "partly_cloudy": 0.5, "overcast": 1}[snap.CloudCover]
	return pgvector.NewVector([]float32{
		float32(snap.TideHeightFt) / 5.0,
		float32(snap.TideChangeRate),
		float32(snap.WindSpeedMph) / 30.0,
		float32(snap.PressureMb-990) / 40.0,
		cloudCode,
		float32(snap.MoonPhase),
	})
}

func (s *PostgresStore) InsertSnapshot(ctx context.Context, snap EnvironmentSnapshot) error {
	if snap.ID == "" {
		snap.ID = newID()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO environment_snapshots (
			id, captured_at, tide_height_ft, tide_stage, tide_change_rate, air_temp_f, water_temp_f,
			wind_speed_mph, wind_direction, wind_gust_mph, pressure_mb, cloud_cover, clarity, salinity,
			moon_phase, moon_phase_name, time_of_day, dock_lights_on, feature_embedding
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (id) DO NOTHING
	`, snap.ID, snap.CapturedAt, snap.TideHeightFt, snap.TideStage, snap.TideChangeRate, snap.AirTempF,
		snap.WaterTempF, snap.WindSpeedMph, snap.WindDirection, snap.WindGustMph, snap.PressureMb,
		snap.CloudCover, snap.Clarity, snap.Salinity, snap.MoonPhase, snap.MoonPhaseName, snap.TimeOfDay,
		snap.DockLightsOn, snapshotEmbedding(snap))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) scanOneSnapshot(ctx context.Context, query string, args ...interface{}) (*EnvironmentSnapshot, error) {
	var snap EnvironmentSnapshot
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&snap.ID, &snap.CapturedAt, &snap.TideHeightFt, &snap.TideStage, &snap.TideChangeRate, &snap.AirTempF,
		&snap.WaterTempF, &snap.WindSpeedMph, &snap.WindDirection, &snap.WindGustMph, &snap.PressureMb,
		&snap.CloudCover, &snap.Clarity, &snap.Salinity, &snap.MoonPhase, &snap.MoonPhaseName, &snap.TimeOfDay,
		&snap.DockLightsOn,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	return &snap, nil
}

func (s *PostgresStore) LatestSnapshot(ctx context.Context) (*EnvironmentSnapshot, error) {
	return s.scanOneSnapshot(ctx, `
		SELECT id, captured_at, tide_height_ft, tide_stage, tide_change_rate, air_temp_f, water_temp_f,
			wind_speed_mph, wind_direction, wind_gust_mph, pressure_mb, cloud_cover, clarity, salinity,
			moon_phase, moon_phase_name, time_of_day, dock_lights_on
		FROM environment_snapshots
		ORDER BY captured_at DESC
		LIMIT 1
	`)
}

func (s *PostgresStore) SnapshotWithinLast(ctx context.Context, d time.Duration) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM environment_snapshots WHERE captured_at >= $1)
	`, time.Now().Add(-d)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check recent snapshot: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) DeleteSnapshotsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM environment_snapshots WHERE captured_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old snapshots: %w", err)
	}
	return res.RowsAffected()
}

// FindSimilarConditions returns up to limit snapshots nearest to the given
// snapshot in feature space, nearest first. It is a method of PostgresStore
// only, not part of the Store interface, and nothing in this module calls
// it; this is a similarity lookup, not a predictive model.
func (s *PostgresStore) FindSimilarConditions(ctx context.Context, snap EnvironmentSnapshot, limit int) ([]EnvironmentSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, captured_at, tide_height_ft, tide_stage, tide_change_rate, air_temp_f, water_temp_f,
			wind_speed_mph, wind_direction, wind_gust_mph, pressure_mb, cloud_cover, clarity, salinity,
			moon_phase, moon_phase_name, time_of_day, dock_lights_on
		FROM environment_snapshots
		ORDER BY feature_embedding <-> $1
		LIMIT $2
	`, snapshotEmbedding(snap), limit)
	if err != nil {
		return nil, fmt.Errorf("query similar conditions: %w", err)
	}
	defer rows.Close()

	var out []EnvironmentSnapshot
	for rows.Next() {
		var e EnvironmentSnapshot
		if err := rows.Scan(&e.ID, &e.CapturedAt, &e.TideHeightFt, &e.TideStage, &e.TideChangeRate, &e.AirTempF,
			&e.WaterTempF, &e.WindSpeedMph, &e.WindDirection, &e.WindGustMph, &e.PressureMb, &e.CloudCover,
			&e.Clarity, &e.Salinity, &e.MoonPhase, &e.MoonPhaseName, &e.TimeOfDay, &e.DockLightsOn); err != nil {
			return nil, fmt.Errorf("scan similar condition: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// --- Catches ---

func (s *PostgresStore) CreateCatch(ctx context.Context, c Catch) (Catch, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catches (
			id, timestamp, species, zone_id, quantity, kept, rig_type, bait_used, size_inches,
			predator_seen_recently, days_since_last_checked, notes, snapshot_id, deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, c.ID, c.Timestamp, c.Species, c.ZoneID, c.Quantity, c.Kept, c.RigType, c.BaitUsed, c.SizeInches,
		c.PredatorSeenRecently, c.DaysSinceLastChecked, c.Notes, c.SnapshotID, c.Deleted)
	if err != nil {
		return Catch{}, fmt.Errorf("insert catch: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) DeleteCatch(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE catches SET deleted = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete catch: %w", err)
	}
	return nil
}

func (s *PostgresStore) CatchesSince(ctx context.Context, species, zoneID string, since time.Time) ([]Catch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, species, zone_id, quantity, kept, rig_type, bait_used, size_inches,
			predator_seen_recently, days_since_last_checked, notes, snapshot_id, deleted
		FROM catches
		WHERE species = $1 AND zone_id = $2 AND timestamp >= $3 AND deleted = false
		ORDER BY timestamp DESC
	`, species, zoneID, since)
	if err != nil {
		return nil, fmt.Errorf("query catches: %w", err)
	}
	defer rows.Close()

	var out []Catch
	for rows.Next() {
		var c Catch
		if err := rows.Scan(&c.ID, &c.Timestamp, &c.Species, &c.ZoneID, &c.Quantity, &c.Kept, &c.RigType,
			&c.BaitUsed, &c.SizeInches, &c.PredatorSeenRecently, &c.DaysSinceLastChecked, &c.Notes,
			&c.SnapshotID, &c.Deleted); err != nil {
			return nil, fmt.Errorf("scan catch: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CatchCount(ctx context.Context, species, zoneID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM catches WHERE species = $1 AND zone_id = $2 AND deleted = false
	`, species, zoneID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count catches: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) MostFrequentBait(ctx context.Context, species, zoneID string, since time.Time) (string, bool, error) {
	var bait string
	err := s.db.QueryRowContext(ctx, `
		SELECT bait_used FROM catches
		WHERE species = $1 AND zone_id = $2 AND timestamp >= $3 AND deleted = false AND bait_used <> ''
		GROUP BY bait_used
		ORDER BY COUNT(*) DESC, MAX(timestamp) DESC
		LIMIT 1
	`, species, zoneID, since).Scan(&bait)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query most frequent bait: %w", err)
	}
	return bait, true, nil
}

func (s *PostgresStore) RecentCatchZones(ctx context.Context, since time.Duration) ([]ZoneSpeciesPair, error) {
	return s.queryZoneSpeciesPairs(ctx, `
		SELECT DISTINCT species, zone_id FROM catches WHERE timestamp >= $1 AND deleted = false
	`, time.Now().Add(-since))
}

// --- Bait logs ---

func (s *PostgresStore) CreateBaitLog(ctx context.Context, b BaitLog) (BaitLog, error) {
	if b.ID == "" {
		b.ID = newID()
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bait_logs (id, timestamp, bait_species, zone_id, quantity_estimate, method, snapshot_id, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, b.ID, b.Timestamp, b.BaitSpecies, b.ZoneID, b.QuantityEstimate, b.Method, b.SnapshotID, b.Deleted)
	if err != nil {
		return BaitLog{}, fmt.Errorf("insert bait log: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) DeleteBaitLog(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE bait_logs SET deleted = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bait log: %w", err)
	}
	return nil
}

func (s *PostgresStore) BaitLogsSince(ctx context.Context, baitSpecies, zoneID string, since time.Time) ([]BaitLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, bait_species, zone_id, quantity_estimate, method, snapshot_id, deleted
		FROM bait_logs
		WHERE bait_species = $1 AND zone_id = $2 AND timestamp >= $3 AND deleted = false
		ORDER BY timestamp DESC
	`, baitSpecies, zoneID, since)
	if err != nil {
		return nil, fmt.Errorf("query bait logs: %w", err)
	}
	defer rows.Close()

	var out []BaitLog
	for rows.Next() {
		var b BaitLog
		if err := rows.Scan(&b.ID, &b.Timestamp, &b.BaitSpecies, &b.ZoneID, &b.QuantityEstimate, &b.Method,
			&b.SnapshotID, &b.Deleted); err != nil {
			return nil, fmt.Errorf("scan bait log: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) RecentBaitZones(ctx context.Context, since time.Duration) ([]ZoneSpeciesPair, error) {
	return s.queryZoneSpeciesPairs(ctx, `
		SELECT DISTINCT bait_species, zone_id FROM bait_logs WHERE timestamp >= $1 AND deleted = false
	`, time.Now().Add(-since))
}

// --- Predator logs ---

func (s *PostgresStore) CreatePredatorLog(ctx context.Context, p PredatorLog) (PredatorLog, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO predator_logs (id, timestamp, predator_kind, zone_id, behavior, tide_stage, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Timestamp, p.PredatorKind, p.ZoneID, p.Behavior, p.TideStage, p.Deleted)
	if err != nil {
		return PredatorLog{}, fmt.Errorf("insert predator log: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) DeletePredatorLog(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE predator_logs SET deleted = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete predator log: %w", err)
	}
	return nil
}

func (s *PostgresStore) LatestPredatorLog(ctx context.Context, zoneID string, since time.Time) (*PredatorLog, error) {
	var p PredatorLog
	err := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, predator_kind, zone_id, behavior, tide_stage, deleted
		FROM predator_logs
		WHERE zone_id = $1 AND timestamp >= $2 AND deleted = false
		ORDER BY timestamp DESC
		LIMIT 1
	`, zoneID, since).Scan(&p.ID, &p.Timestamp, &p.PredatorKind, &p.ZoneID, &p.Behavior, &p.TideStage, &p.Deleted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest predator log: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) RecentPredatorZones(ctx context.Context, since time.Duration) ([]ZoneSpeciesPair, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT predator_kind, zone_id FROM predator_logs WHERE timestamp >= $1 AND deleted = false
	`, time.Now().Add(-since))
	if err != nil {
		return nil, fmt.Errorf("query recent predator zones: %w", err)
	}
	defer rows.Close()
	var out []ZoneSpeciesPair
	for rows.Next() {
		var p ZoneSpeciesPair
		if err := rows.Scan(&p.Species, &p.ZoneID); err != nil {
			return nil, fmt.Errorf("scan predator zone: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) queryZoneSpeciesPairs(ctx context.Context, query string, args ...interface{}) ([]ZoneSpeciesPair, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query zone species pairs: %w", err)
	}
	defer rows.Close()
	var out []ZoneSpeciesPair
	for rows.Next() {
		var p ZoneSpeciesPair
		if err := rows.Scan(&p.Species, &p.ZoneID); err != nil {
			return nil, fmt.Errorf("scan zone species pair: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// --- Bite / bait score cache ---

func (s *PostgresStore) GetBiteScore(ctx context.Context, species, zoneID string) (*BiteScore, error) {
	var b BiteScore
	err := s.db.QueryRowContext(ctx, `
		SELECT species, zone_id, score, rating, confidence, reason_summary, last_updated
		FROM bite_scores WHERE species = $1 AND zone_id = $2
	`, species, zoneID).Scan(&b.Species, &b.ZoneID, &b.Score, &b.Rating, &b.Confidence, &b.ReasonSummary, &b.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query bite score: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) UpsertBiteScore(ctx context.Context, b BiteScore) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bite_scores (species, zone_id, score, rating, confidence, reason_summary, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (species, zone_id) DO UPDATE SET
			score = EXCLUDED.score, rating = EXCLUDED.rating, confidence = EXCLUDED.confidence,
			reason_summary = EXCLUDED.reason_summary, last_updated = EXCLUDED.last_updated
	`, b.Species, b.ZoneID, b.Score, b.Rating, b.Confidence, b.ReasonSummary, b.LastUpdated)
	if err != nil {
		return fmt.Errorf("upsert bite score: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetBaitScore(ctx context.Context, baitSpecies, zoneID string) (*BaitScore, error) {
	var b BaitScore
	err := s.db.QueryRowContext(ctx, `
		SELECT bait_species, zone_id, score, rating, reason_summary, last_updated
		FROM bait_scores WHERE bait_species = $1 AND zone_id = $2
	`, baitSpecies, zoneID).Scan(&b.BaitSpecies, &b.ZoneID, &b.Score, &b.Rating, &b.ReasonSummary, &b.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query bait score: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) UpsertBaitScore(ctx context.Context, b BaitScore) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bait_scores (bait_species, zone_id, score, rating, reason_summary, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (bait_species, zone_id) DO UPDATE SET
			score = EXCLUDED.score, rating = EXCLUDED.rating, reason_summary = EXCLUDED.reason_summary,
			last_updated = EXCLUDED.last_updated
	`, b.BaitSpecies, b.ZoneID, b.Score, b.Rating, b.ReasonSummary, b.LastUpdated)
	if err != nil {
		return fmt.Errorf("upsert bait score: %w", err)
	}
	return nil
}

// --- Learning tables ---

func (s *PostgresStore) GetRigEffect(ctx context.Context, species, zoneID, rigType string) (*RigEffect, error) {
	var e RigEffect
	err := s.db.QueryRowContext(ctx, `
		SELECT species, zone_id, rig_type, success_count, weight, last_used
		FROM rig_effects WHERE species = $1 AND zone_id = $2 AND rig_type = $3
	`, species, zoneID, rigType).Scan(&e.Species, &e.ZoneID, &e.RigType, &e.SuccessCount, &e.Weight, &e.LastUsed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query rig effect: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) UpsertRigEffect(ctx context.Context, e RigEffect) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rig_effects (species, zone_id, rig_type, success_count, weight, last_used)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (species, zone_id, rig_type) DO UPDATE SET
			success_count = EXCLUDED.success_count, weight = EXCLUDED.weight, last_used = EXCLUDED.last_used
	`, e.Species, e.ZoneID, e.RigType, e.SuccessCount, e.Weight, e.LastUsed)
	if err != nil {
		return fmt.Errorf("upsert rig effect: %w", err)
	}
	return nil
}

func (s *PostgresStore) BestRigEffect(ctx context.Context, species, zoneID string, minSuccessCount float64) (*RigEffect, error) {
	var e RigEffect
	err := s.db.QueryRowContext(ctx, `
		SELECT species, zone_id, rig_type, success_count, weight, last_used
		FROM rig_effects
		WHERE species = $1 AND zone_id = $2 AND success_count >= $3
		ORDER BY weight DESC, success_count DESC
		LIMIT 1
	`, species, zoneID, minSuccessCount).Scan(&e.Species, &e.ZoneID, &e.RigType, &e.SuccessCount, &e.Weight, &e.LastUsed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query best rig effect: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) GetZoneConditionEffect(ctx context.Context, species, zoneID, tideBand, clarityBand, windBand, currentBand string) (*ZoneConditionEffect, error) {
	var e ZoneConditionEffect
	err := s.db.QueryRowContext(ctx, `
		SELECT species, zone_id, tide_band, clarity_band, wind_band, current_band, success_count, weight
		FROM zone_condition_effects
		WHERE species = $1 AND zone_id = $2 AND tide_band = $3 AND clarity_band = $4 AND wind_band = $5 AND current_band = $6
	`, species, zoneID, tideBand, clarityBand, windBand, currentBand).Scan(
		&e.Species, &e.ZoneID, &e.TideBand, &e.ClarityBand, &e.WindBand, &e.CurrentBand, &e.SuccessCount, &e.Weight)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query zone condition effect: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) UpsertZoneConditionEffect(ctx context.Context, e ZoneConditionEffect) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO zone_condition_effects (species, zone_id, tide_band, clarity_band, wind_band, current_band, success_count, weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (species, zone_id, tide_band, clarity_band, wind_band, current_band) DO UPDATE SET
			success_count = EXCLUDED.success_count, weight = EXCLUDED.weight
	`, e.Species, e.ZoneID, e.TideBand, e.ClarityBand, e.WindBand, e.CurrentBand, e.SuccessCount, e.Weight)
	if err != nil {
		return fmt.Errorf("upsert zone condition effect: %w", err)
	}
	return nil
}

// DominantTideBand mirrors the original source's get_best_tide_for_zone:
// it compares each tide band's average learned weight, preferring a single
// band that clearly beats the others, falling back to "moving" when both
// incoming and outgoing beat slack without a clear winner between them,
// and "" when there's no signal at all.
func (s *PostgresStore) DominantTideBand(ctx context.Context, species, zoneID string) (string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tide_band, AVG(weight) FROM zone_condition_effects
		WHERE species = $1 AND zone_id = $2
		GROUP BY tide_band
	`, species, zoneID)
	if err != nil {
		return "", fmt.Errorf("query dominant tide band: %w", err)
	}
	defer rows.Close()

	avgWeight := map[string]float64{}
	for rows.Next() {
		var band string
		var weight float64
		if err := rows.Scan(&band, &weight); err != nil {
			return "", fmt.Errorf("scan dominant tide band: %w", err)
		}
		avgWeight[band] = weight
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate dominant tide band: %w", err)
	}
	if len(avgWeight) == 0 {
		return "", nil
	}

	incoming, outgoing, slack := avgWeight["incoming"], avgWeight["outgoing"], avgWeight["slack"]
	switch {
	case incoming > outgoing+0.5 && incoming > slack:
		return "incoming", nil
	case outgoing > incoming+0.5 && outgoing > slack:
		return "outgoing", nil
	case incoming > slack && outgoing > slack:
		return "moving", nil
	default:
		return "", nil
	}
}

func (s *PostgresStore) GetRigConditionEffect(ctx context.Context, species, rigType, tideBand, clarityBand string) (*RigConditionEffect, error) {
	var e RigConditionEffect
	err := s.db.QueryRowContext(ctx, `
		SELECT species, rig_type, tide_band, clarity_band, success_count, weight
		FROM rig_condition_effects
		WHERE species = $1 AND rig_type = $2 AND tide_band = $3 AND clarity_band = $4
	`, species, rigType, tideBand, clarityBand).Scan(&e.Species, &e.RigType, &e.TideBand, &e.ClarityBand, &e.SuccessCount, &e.Weight)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query rig condition effect: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) UpsertRigConditionEffect(ctx context.Context, e RigConditionEffect) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rig_condition_effects (species, rig_type, tide_band, clarity_band, success_count, weight)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (species, rig_type, tide_band, clarity_band) DO UPDATE SET
			success_count = EXCLUDED.success_count, weight = EXCLUDED.weight
	`, e.Species, e.RigType, e.TideBand, e.ClarityBand, e.SuccessCount, e.Weight)
	if err != nil {
		return fmt.Errorf("upsert rig condition effect: %w", err)
	}
	return nil
}

// --- Tips ---

func (s *PostgresStore) GetTip(ctx context.Context, species, zoneID string) (*SpeciesZoneTip, error) {
	var t SpeciesZoneTip
	err := s.db.QueryRowContext(ctx, `
		SELECT species, zone_id, tip_text, last_updated FROM species_zone_tips WHERE species = $1 AND zone_id = $2
	`, species, zoneID).Scan(&t.Species, &t.ZoneID, &t.TipText, &t.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query tip: %w", err)
	}
	return &t, nil
}

func (s *PostgresStore) UpsertTip(ctx context.Context, t SpeciesZoneTip) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO species_zone_tips (species, zone_id, tip_text, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (species, zone_id) DO UPDATE SET tip_text = EXCLUDED.tip_text, last_updated = EXCLUDED.last_updated
	`, t.Species, t.ZoneID, t.TipText, t.LastUpdated)
	if err != nil {
		return fmt.Errorf("upsert tip: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteTip(ctx context.Context, species, zoneID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM species_zone_tips WHERE species = $1 AND zone_id = $2`, species, zoneID)
	if err != nil {
		return fmt.Errorf("delete tip: %w", err)
	}
	return nil
}

// --- Forecast windows ---

func (s *PostgresStore) ReplaceForecastWindows(ctx context.Context, windows []ForecastWindow, forecasts []SpeciesForecast) error {
	return s.RunInTransaction(ctx, func(ctx context.Context, tx Store) error {
		txStore := tx.(*PostgresStore)
		if _, err := txStore.db.ExecContext(ctx, `DELETE FROM species_forecasts`); err != nil {
			return fmt.Errorf("clear species forecasts: %w", err)
		}
		if _, err := txStore.db.ExecContext(ctx, `DELETE FROM forecast_windows`); err != nil {
			return fmt.Errorf("clear forecast windows: %w", err)
		}
		for _, w := range windows {
			if w.ID == "" {
				w.ID = newID()
			}
			if _, err := txStore.db.ExecContext(ctx, `
				INSERT INTO forecast_windows (id, start, "end") VALUES ($1, $2, $3)
			`, w.ID, w.Start, w.End); err != nil {
				return fmt.Errorf("insert forecast window: %w", err)
			}
		}
		for _, f := range forecasts {
			if _, err := txStore.db.ExecContext(ctx, `
				INSERT INTO species_forecasts (window_id, species, is_running, running_factor, bite_score, bite_label)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, f.WindowID, f.Species, f.IsRunning, f.RunningFactor, f.BiteScore, f.BiteLabel); err != nil {
				return fmt.Errorf("insert species forecast: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) ForecastWindowsFrom(ctx context.Context, start time.Time, count int) ([]ForecastWindow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start, "end" FROM forecast_windows WHERE start >= $1 ORDER BY start ASC LIMIT $2
	`, start, count)
	if err != nil {
		return nil, fmt.Errorf("query forecast windows: %w", err)
	}
	defer rows.Close()
	var out []ForecastWindow
	for rows.Next() {
		var w ForecastWindow
		if err := rows.Scan(&w.ID, &w.Start, &w.End); err != nil {
			return nil, fmt.Errorf("scan forecast window: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SpeciesForecastsForWindow(ctx context.Context, windowID string) ([]SpeciesForecast, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT window_id, species, is_running, running_factor, bite_score, bite_label
		FROM species_forecasts WHERE window_id = $1
	`, windowID)
	if err != nil {
		return nil, fmt.Errorf("query species forecasts: %w", err)
	}
	defer rows.Close()
	var out []SpeciesForecast
	for rows.Next() {
		var f SpeciesForecast
		if err := rows.Scan(&f.WindowID, &f.Species, &f.IsRunning, &f.RunningFactor, &f.BiteScore, &f.BiteLabel); err != nil {
			return nil, fmt.Errorf("scan species forecast: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// --- Alerts ---

func (s *PostgresStore) UpsertAlert(ctx context.Context, a Alert) (Alert, error) {
	if a.ID == "" {
		a.ID = newID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (id, species, window_start, window_end, bite_score, message, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (species, window_start) DO UPDATE SET
			window_end = EXCLUDED.window_end, bite_score = EXCLUDED.bite_score, message = EXCLUDED.message,
			is_active = EXCLUDED.is_active
	`, a.ID, a.Species, a.WindowStart, a.WindowEnd, a.BiteScore, a.Message, a.IsActive, a.CreatedAt)
	if err != nil {
		return Alert{}, fmt.Errorf("upsert alert: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) ActiveAlert(ctx context.Context, species string, windowStart time.Time) (*Alert, error) {
	var a Alert
	err := s.db.QueryRowContext(ctx, `
		SELECT id, species, window_start, window_end, bite_score, message, is_active, created_at
		FROM alerts WHERE species = $1 AND window_start = $2 AND is_active = true
	`, species, windowStart).Scan(&a.ID, &a.Species, &a.WindowStart, &a.WindowEnd, &a.BiteScore, &a.Message, &a.IsActive, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query active alert: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) DeactivateExpiredAlerts(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE alerts SET is_active = false WHERE window_end < $1 AND is_active = true`, now)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired alerts: %w", err)
	}
	return res.RowsAffected()
}

func (s *PostgresStore) ActiveAlerts(ctx context.Context) ([]Alert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, species, window_start, window_end, bite_score, message, is_active, created_at
		FROM alerts WHERE is_active = true ORDER BY window_start ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query active alerts: %w", err)
	}
	defer rows.Close()
	var out []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.Species, &a.WindowStart, &a.WindowEnd, &a.BiteScore, &a.Message, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// --- Zones ---

func (s *PostgresStore) Zones(ctx context.Context) ([]Zone, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT zone_id, depth_band_min_ft, depth_band_max_ft, has_pilings, has_center_pilings, has_rubble,
			has_light, has_open_water, description
		FROM zones ORDER BY zone_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query zones: %w", err)
	}
	defer rows.Close()
	var out []Zone
	for rows.Next() {
		var z Zone
		if err := rows.Scan(&z.ZoneID, &z.DepthBandMinFt, &z.DepthBandMaxFt, &z.HasPilings, &z.HasCenterPilings,
			&z.HasRubble, &z.HasLight, &z.HasOpenWater, &z.Description); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpsertZone(ctx context.Context, z Zone) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO zones (zone_id, depth_band_min_ft, depth_band_max_ft, has_pilings, has_center_pilings,
			has_rubble, has_light, has_open_water, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (zone_id) DO UPDATE SET
			depth_band_min_ft = EXCLUDED.depth_band_min_ft, depth_band_max_ft = EXCLUDED.depth_band_max_ft,
			has_pilings = EXCLUDED.has_pilings, has_center_pilings = EXCLUDED.has_center_pilings,
			has_rubble = EXCLUDED.has_rubble, has_light = EXCLUDED.has_light, has_open_water = EXCLUDED.has_open_water,
			description = EXCLUDED.description
	`, z.ZoneID, z.DepthBandMinFt, z.DepthBandMaxFt, z.HasPilings, z.HasCenterPilings, z.HasRubble, z.HasLight,
		z.HasOpenWater, z.Description)
	if err != nil {
		return fmt.Errorf("upsert zone: %w", err)
	}
	return nil
}

// --- Transactions ---

// RunInTransaction runs fn against a PostgresStore bound to a single
// *sql.Tx. fn receives tx as a Store so nested code need not know it is
// inside a transaction.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	tx, err := s.rawDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txStore := &PostgresStore{rawDB: s.rawDB, db: tx}
	if err := fn(ctx, txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed: %w (rollback error: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
