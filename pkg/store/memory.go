package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by package tests in place of
// PostgresStore, keeping every internal/ component exercisable without a
// database. A single mutex guards all tables; each method takes the lock
// for its own duration, and RunInTransaction runs fn directly against the
// same store without modeling rollback.
type MemoryStore struct {
	mu sync.Mutex

	tideSamples         []TideSample
	weatherObservations []WeatherObservation
	astronomicalDays    map[time.Time]AstronomicalDay
	waterTempReadings   []WaterTempReading
	marineConditions    []MarineCondition
	snapshots           []EnvironmentSnapshot

	catches      map[string]Catch
	baitLogs     map[string]BaitLog
	predatorLogs map[string]PredatorLog

	biteScores map[biteScoreKey]BiteScore
	baitScores map[baitScoreKey]BaitScore

	rigEffects           map[rigEffectKey]RigEffect
	zoneConditionEffects map[zoneConditionKey]ZoneConditionEffect
	rigConditionEffects  map[rigConditionKey]RigConditionEffect

	tips map[biteScoreKey]SpeciesZoneTip

	forecastWindows  []ForecastWindow
	speciesForecasts map[string][]SpeciesForecast // windowID -> forecasts

	alerts map[string]Alert

	zones map[string]Zone
}

type biteScoreKey struct{ species, zoneID string }
type baitScoreKey struct{ baitSpecies, zoneID string }
type rigEffectKey struct{ species, zoneID, rigType string }
type zoneConditionKey struct{ species, zoneID, tideBand, clarityBand, windBand, currentBand string }
type rigConditionKey struct{ species, rigType, tideBand, clarityBand string }

// NewMemoryStore returns an empty MemoryStore ready for use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		astronomicalDays:     make(map[time.Time]AstronomicalDay),
		catches:              make(map[string]Catch),
		baitLogs:             make(map[string]BaitLog),
		predatorLogs:         make(map[string]PredatorLog),
		biteScores:           make(map[biteScoreKey]BiteScore),
		baitScores:           make(map[baitScoreKey]BaitScore),
		rigEffects:           make(map[rigEffectKey]RigEffect),
		zoneConditionEffects: make(map[zoneConditionKey]ZoneConditionEffect),
		rigConditionEffects:  make(map[rigConditionKey]RigConditionEffect),
		tips:                 make(map[biteScoreKey]SpeciesZoneTip),
		speciesForecasts:     make(map[string][]SpeciesForecast),
		alerts:               make(map[string]Alert),
		zones:                make(map[string]Zone),
	}
}

// --- Tide ---

func (s *MemoryStore) InsertTideSamples(ctx context.Context, samples []TideSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sample := range samples {
		if sample.ID == "" {
			sample.ID = uuid.NewString()
		}
		s.tideSamples = append(s.tideSamples, sample)
	}
	return nil
}

func (s *MemoryStore) TideSamplesAround(ctx context.Context, t time.Time, window time.Duration) ([]TideSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from, to := t.Add(-window), t.Add(window)
	var out []TideSample
	for _, sample := range s.tideSamples {
		if !sample.Timestamp.Before(from) && !sample.Timestamp.After(to) {
			out = append(out, sample)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// --- Weather ---

func (s *MemoryStore) InsertWeatherObservation(ctx context.Context, obs WeatherObservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obs.ID == "" {
		obs.ID = uuid.NewString()
	}
	s.weatherObservations = append(s.weatherObservations, obs)
	return nil
}

func (s *MemoryStore) LatestWeatherObservation(ctx context.Context) (*WeatherObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *WeatherObservation
	for i := range s.weatherObservations {
		obs := s.weatherObservations[i]
		if obs.IsForecast {
			continue
		}
		if latest == nil || obs.Timestamp.After(latest.Timestamp) {
			cp := obs
			latest = &cp
		}
	}
	return latest, nil
}

func (s *MemoryStore) LatestWeatherForecast(ctx context.Context, after time.Time) ([]WeatherObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []WeatherObservation
	for _, obs := range s.weatherObservations {
		if obs.IsForecast && !obs.Timestamp.Before(after) {
			out = append(out, obs)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// --- Astronomy ---

func (s *MemoryStore) UpsertAstronomicalDay(ctx context.Context, day AstronomicalDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.astronomicalDays[day.Date.Truncate(24*time.Hour)] = day
	return nil
}

func (s *MemoryStore) AstronomicalDayFor(ctx context.Context, date time.Time) (*AstronomicalDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, ok := s.astronomicalDays[date.Truncate(24*time.Hour)]
	if !ok {
		return nil, nil
	}
	return &day, nil
}

// --- Water temperature ---

func (s *MemoryStore) InsertWaterTempReading(ctx context.Context, reading WaterTempReading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	s.waterTempReadings = append(s.waterTempReadings, reading)
	return nil
}

func (s *MemoryStore) LatestWaterTempReading(ctx context.Context) (*WaterTempReading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *WaterTempReading
	for i := range s.waterTempReadings {
		r := s.waterTempReadings[i]
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			cp := r
			latest = &cp
		}
	}
	return latest, nil
}

// --- Marine ---

func (s *MemoryStore) InsertMarineCondition(ctx context.Context, cond MarineCondition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cond.ID == "" {
		cond.ID = uuid.NewString()
	}
	s.marineConditions = append(s.marineConditions, cond)
	return nil
}

func (s *MemoryStore) LatestMarineCondition(ctx context.Context) (*MarineCondition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *MarineCondition
	for i := range s.marineConditions {
		c := s.marineConditions[i]
		if latest == nil || c.Timestamp.After(latest.Timestamp) {
			cp := c
			latest = &cp
		}
	}
	return latest, nil
}

// --- Snapshots ---

func (s *MemoryStore) InsertSnapshot(ctx context.Context, snap EnvironmentSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	s.snapshots = append(s.snapshots, snap)
	return nil
}

func (s *MemoryStore) LatestSnapshot(ctx context.Context) (*EnvironmentSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *EnvironmentSnapshot
	for i := range s.snapshots {
		snap := s.snapshots[i]
		if latest == nil || snap.CapturedAt.After(latest.CapturedAt) {
			cp := snap
			latest = &cp
		}
	}
	return latest, nil
}

func (s *MemoryStore) SnapshotWithinLast(ctx context.Context, d time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-d)
	for _, snap := range s.snapshots {
		if !snap.CapturedAt.Before(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) DeleteSnapshotsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []EnvironmentSnapshot
	var removed int64
	for _, snap := range s.snapshots {
		if snap.CapturedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, snap)
	}
	s.snapshots = kept
	return removed, nil
}

// --- Catches ---

func (s *MemoryStore) CreateCatch(ctx context.Context, c Catch) (Catch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	s.catches[c.ID] = c
	return c, nil
}

func (s *MemoryStore) DeleteCatch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.catches[id]
	if !ok {
		return nil
	}
	c.Deleted = true
	s.catches[id] = c
	return nil
}

func (s *MemoryStore) CatchesSince(ctx context.Context, species, zoneID string, since time.Time) ([]Catch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Catch
	for _, c := range s.catches {
		if c.Deleted || c.Species != species || c.ZoneID != zoneID || c.Timestamp.Before(since) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (s *MemoryStore) CatchCount(ctx context.Context, species, zoneID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, c := range s.catches {
		if !c.Deleted && c.Species == species && c.ZoneID == zoneID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) MostFrequentBait(ctx context.Context, species, zoneID string, since time.Time) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int{}
	latest := map[string]time.Time{}
	for _, c := range s.catches {
		if c.Deleted || c.Species != species || c.ZoneID != zoneID || c.Timestamp.Before(since) || c.BaitUsed == "" {
			continue
		}
		counts[c.BaitUsed]++
		if c.Timestamp.After(latest[c.BaitUsed]) {
			latest[c.BaitUsed] = c.Timestamp
		}
	}
	best, bestCount := "", -1
	for bait, count := range counts {
		if count > bestCount || (count == bestCount && latest[bait].After(latest[best])) {
			best, bestCount = bait, count
		}
	}
	if best == "" {
		return "", false, nil
	}
	return best, true, nil
}

func (s *MemoryStore) RecentCatchZones(ctx context.Context, since time.Duration) ([]ZoneSpeciesPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-since)
	seen := map[ZoneSpeciesPair]struct{}{}
	var out []ZoneSpeciesPair
	for _, c := range s.catches {
		if c.Deleted || c.Timestamp.Before(cutoff) {
			continue
		}
		pair := ZoneSpeciesPair{Species: c.Species, ZoneID: c.ZoneID}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out, nil
}

// --- Bait logs ---

func (s *MemoryStore) CreateBaitLog(ctx context.Context, b BaitLog) (BaitLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now().UTC()
	}
	s.baitLogs[b.ID] = b
	return b, nil
}

func (s *MemoryStore) DeleteBaitLog(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.baitLogs[id]
	if !ok {
		return nil
	}
	b.Deleted = true
	s.baitLogs[id] = b
	return nil
}

func (s *MemoryStore) BaitLogsSince(ctx context.Context, baitSpecies, zoneID string, since time.Time) ([]BaitLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []BaitLog
	for _, b := range s.baitLogs {
		if b.Deleted || b.BaitSpecies != baitSpecies || b.ZoneID != zoneID || b.Timestamp.Before(since) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (s *MemoryStore) RecentBaitZones(ctx context.Context, since time.Duration) ([]ZoneSpeciesPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-since)
	seen := map[ZoneSpeciesPair]struct{}{}
	var out []ZoneSpeciesPair
	for _, b := range s.baitLogs {
		if b.Deleted || b.Timestamp.Before(cutoff) {
			continue
		}
		pair := ZoneSpeciesPair{Species: b.BaitSpecies, ZoneID: b.ZoneID}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out, nil
}

// --- Predator logs ---

func (s *MemoryStore) CreatePredatorLog(ctx context.Context, p PredatorLog) (PredatorLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	s.predatorLogs[p.ID] = p
	return p, nil
}

func (s *MemoryStore) DeletePredatorLog(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.predatorLogs[id]
	if !ok {
		return nil
	}
	p.Deleted = true
	s.predatorLogs[id] = p
	return nil
}

func (s *MemoryStore) LatestPredatorLog(ctx context.Context, zoneID string, since time.Time) (*PredatorLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *PredatorLog
	for _, p := range s.predatorLogs {
		if p.Deleted || p.ZoneID != zoneID || p.Timestamp.Before(since) {
			continue
		}
		if latest == nil || p.Timestamp.After(latest.Timestamp) {
			cp := p
			latest = &cp
		}
	}
	return latest, nil
}

func (s *MemoryStore) RecentPredatorZones(ctx context.Context, since time.Duration) ([]ZoneSpeciesPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-since)
	seen := map[ZoneSpeciesPair]struct{}{}
	var out []ZoneSpeciesPair
	for _, p := range s.predatorLogs {
		if p.Deleted || p.Timestamp.Before(cutoff) {
			continue
		}
		pair := ZoneSpeciesPair{Species: p.PredatorKind, ZoneID: p.ZoneID}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out, nil
}

// --- Bite / bait score cache ---

func (s *MemoryStore) GetBiteScore(ctx context.Context, species, zoneID string) (*BiteScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.biteScores[biteScoreKey{species, zoneID}]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *MemoryStore) UpsertBiteScore(ctx context.Context, b BiteScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.biteScores[biteScoreKey{b.Species, b.ZoneID}] = b
	return nil
}

func (s *MemoryStore) GetBaitScore(ctx context.Context, baitSpecies, zoneID string) (*BaitScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.baitScores[baitScoreKey{baitSpecies, zoneID}]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *MemoryStore) UpsertBaitScore(ctx context.Context, b BaitScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baitScores[baitScoreKey{b.BaitSpecies, b.ZoneID}] = b
	return nil
}

// --- Learning tables ---

func (s *MemoryStore) GetRigEffect(ctx context.Context, species, zoneID, rigType string) (*RigEffect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.rigEffects[rigEffectKey{species, zoneID, rigType}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *MemoryStore) UpsertRigEffect(ctx context.Context, e RigEffect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rigEffects[rigEffectKey{e.Species, e.ZoneID, e.RigType}] = e
	return nil
}

func (s *MemoryStore) BestRigEffect(ctx context.Context, species, zoneID string, minSuccessCount float64) (*RigEffect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *RigEffect
	for _, e := range s.rigEffects {
		if e.Species != species || e.ZoneID != zoneID || e.SuccessCount < minSuccessCount {
			continue
		}
		if best == nil || e.Weight > best.Weight || (e.Weight == best.Weight && e.SuccessCount > best.SuccessCount) {
			cp := e
			best = &cp
		}
	}
	return best, nil
}

func (s *MemoryStore) GetZoneConditionEffect(ctx context.Context, species, zoneID, tideBand, clarityBand, windBand, currentBand string) (*ZoneConditionEffect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.zoneConditionEffects[zoneConditionKey{species, zoneID, tideBand, clarityBand, windBand, currentBand}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *MemoryStore) UpsertZoneConditionEffect(ctx context.Context, e ZoneConditionEffect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoneConditionEffects[zoneConditionKey{e.Species, e.ZoneID, e.TideBand, e.ClarityBand, e.WindBand, e.CurrentBand}] = e
	return nil
}

// DominantTideBand mirrors PostgresStore's: compares each tide band's
// average learned weight for (species, zoneID), preferring a single band
// that clearly beats the others.
func (s *MemoryStore) DominantTideBand(ctx context.Context, species, zoneID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, e := range s.zoneConditionEffects {
		if e.Species != species || e.ZoneID != zoneID {
			continue
		}
		sums[e.TideBand] += e.Weight
		counts[e.TideBand]++
	}
	if len(counts) == 0 {
		return "", nil
	}
	avg := func(band string) float64 {
		if counts[band] == 0 {
			return 0
		}
		return sums[band] / float64(counts[band])
	}
	incoming, outgoing, slack := avg("incoming"), avg("outgoing"), avg("slack")
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

func (s *MemoryStore) GetRigConditionEffect(ctx context.Context, species, rigType, tideBand, clarityBand string) (*RigConditionEffect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.rigConditionEffects[rigConditionKey{species, rigType, tideBand, clarityBand}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *MemoryStore) UpsertRigConditionEffect(ctx context.Context, e RigConditionEffect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rigConditionEffects[rigConditionKey{e.Species, e.RigType, e.TideBand, e.ClarityBand}] = e
	return nil
}

// --- Tips ---

func (s *MemoryStore) GetTip(ctx context.Context, species, zoneID string) (*SpeciesZoneTip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tips[biteScoreKey{species, zoneID}]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *MemoryStore) UpsertTip(ctx context.Context, t SpeciesZoneTip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tips[biteScoreKey{t.Species, t.ZoneID}] = t
	return nil
}

func (s *MemoryStore) DeleteTip(ctx context.Context, species, zoneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tips, biteScoreKey{species, zoneID})
	return nil
}

// --- Forecast windows ---

func (s *MemoryStore) ReplaceForecastWindows(ctx context.Context, windows []ForecastWindow, forecasts []SpeciesForecast) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ForecastWindow, 0, len(windows))
	for _, w := range windows {
		if w.ID == "" {
			w.ID = uuid.NewString()
		}
		out = append(out, w)
	}
	s.forecastWindows = out

	byWindow := make(map[string][]SpeciesForecast)
	for _, f := range forecasts {
		byWindow[f.WindowID] = append(byWindow[f.WindowID], f)
	}
	s.speciesForecasts = byWindow
	return nil
}

func (s *MemoryStore) ForecastWindowsFrom(ctx context.Context, start time.Time, count int) ([]ForecastWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var candidates []ForecastWindow
	for _, w := range s.forecastWindows {
		if !w.Start.Before(start) {
			candidates = append(candidates, w)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Start.Before(candidates[j].Start) })
	if count >= 0 && len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}

func (s *MemoryStore) SpeciesForecastsForWindow(ctx context.Context, windowID string) ([]SpeciesForecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SpeciesForecast, len(s.speciesForecasts[windowID]))
	copy(out, s.speciesForecasts[windowID])
	return out, nil
}

// --- Alerts ---

func (s *MemoryStore) UpsertAlert(ctx context.Context, a Alert) (Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.alerts {
		if existing.Species == a.Species && existing.WindowStart.Equal(a.WindowStart) {
			a.ID = id
			a.CreatedAt = existing.CreatedAt
			s.alerts[id] = a
			return a, nil
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	s.alerts[a.ID] = a
	return a, nil
}

func (s *MemoryStore) ActiveAlert(ctx context.Context, species string, windowStart time.Time) (*Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if a.Species == species && a.WindowStart.Equal(windowStart) && a.IsActive {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) DeactivateExpiredAlerts(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, a := range s.alerts {
		if a.IsActive && a.WindowEnd.Before(now) {
			a.IsActive = false
			s.alerts[id] = a
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) ActiveAlerts(ctx context.Context) ([]Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Alert
	for _, a := range s.alerts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WindowStart.Before(out[j].WindowStart) })
	return out, nil
}

// --- Zones ---

func (s *MemoryStore) Zones(ctx context.Context) ([]Zone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Zone, 0, len(s.zones))
	for _, z := range s.zones {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ZoneID < out[j].ZoneID })
	return out, nil
}

func (s *MemoryStore) UpsertZone(ctx context.Context, z Zone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones[z.ZoneID] = z
	return nil
}

// --- Transactions ---

// RunInTransaction runs fn against the same store, satisfying the interface
// without modeling rollback: each method fn calls still takes its own lock,
// and any error fn returns is simply propagated, not undone.
func (s *MemoryStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return fn(ctx, s)
}
