// Package engine binds storage, external sources, and the scoring/learning
// components into the single entry point both cmd/ binaries drive (spec
// §0): catch/bait/predator writes trigger learning + cache + tip updates,
// scheduler ticks drive ingestion + forecast + alerts.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/alert"
	"github.com/saaga0h/bayscan-engine/internal/cache"
	"github.com/saaga0h/bayscan-engine/internal/forecast"
	"github.com/saaga0h/bayscan-engine/internal/learning"
	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/internal/snapshot"
	"github.com/saaga0h/bayscan-engine/internal/sources"
	"github.com/saaga0h/bayscan-engine/internal/tip"
	"github.com/saaga0h/bayscan-engine/pkg/config"
	"github.com/saaga0h/bayscan-engine/pkg/mqtt"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// Engine wires storage, external sources, and the engine's internal
// components together. Exported methods are the only way any cmd/ binary
// touches the domain.
type Engine struct {
	Store store.Store
	Cfg   *config.Config

	Tide            sources.TideSource
	WeatherObs      sources.WeatherObservationsSource
	WeatherForecast sources.WeatherForecastSource
	Marine          sources.MarineSource
	Astronomy       sources.AstronomySource
	WaterTemp       sources.WaterTempSource

	recalculator *cache.Recalculator
	updater      *learning.Updater
	tipGen       *tip.Generator
	capturer     *snapshot.Capturer
	builder      *forecast.Builder
	evaluator    *alert.Evaluator

	mqttClient mqtt.Client
	logger     *slog.Logger
}

// New assembles an Engine from its storage, sources, config, and an
// optional MQTT event bus (may be nil, in which case event publication is
// skipped).
func New(s store.Store, cfg *config.Config, src struct {
	Tide            sources.TideSource
	WeatherObs      sources.WeatherObservationsSource
	WeatherForecast sources.WeatherForecastSource
	Marine          sources.MarineSource
	Astronomy       sources.AstronomySource
	WaterTemp       sources.WaterTempSource
}, mqttClient mqtt.Client, logger *slog.Logger) *Engine {
	updater := learning.NewUpdater(s)
	return &Engine{
		Store:           s,
		Cfg:             cfg,
		Tide:            src.Tide,
		WeatherObs:      src.WeatherObs,
		WeatherForecast: src.WeatherForecast,
		Marine:          src.Marine,
		Astronomy:       src.Astronomy,
		WaterTemp:       src.WaterTemp,
		recalculator:    cache.NewRecalculator(s, logger),
		updater:         updater,
		tipGen:          tip.NewGenerator(s, updater, logger),
		capturer:        snapshot.NewCapturer(s, cfg.Latitude, cfg.Longitude, logger),
		builder:         forecast.NewBuilder(s, cfg.Latitude, cfg.Longitude, float64(cfg.MarinePenaltyUnsafe), float64(cfg.MarinePenaltyCaution), logger),
		evaluator:       alert.NewEvaluator(s, cfg.AlertThresholds, logger),
		mqttClient:      mqttClient,
		logger:          logger,
	}
}

func (e *Engine) publish(topic string, payload []byte) {
	if e.mqttClient == nil {
		return
	}
	if err := e.mqttClient.Publish(topic, 0, false, payload); err != nil {
		e.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// currentConditions returns the latest captured environment snapshot
// reduced for scoring/learning use. Falls back to a zero-value
// EnvironmentSnapshot (logged) if no snapshot has ever been captured — forecast windows don't
// retain their raw inputs, so there is no secondary fallback source to
// read from in that case.
func (e *Engine) currentConditions(ctx context.Context) (store.EnvironmentSnapshot, error) {
	snap, err := e.Store.LatestSnapshot(ctx)
	if err != nil {
		return store.EnvironmentSnapshot{}, fmt.Errorf("current conditions: %w", err)
	}
	if snap == nil {
		e.logger.Warn("no environment snapshot captured yet, using empty conditions")
		return store.EnvironmentSnapshot{}, nil
	}
	return *snap, nil
}

// isCrabTrapCatch reports whether a catch event counts as a weaker,
// partial-weight trap check rather than a full-weight active catch (spec
// §4.8).
func isCrabTrapCatch(c store.Catch) bool {
	return c.Species == "blue_crab" && (strings.Contains(strings.ToLower(c.RigType), "trap") || strings.Contains(strings.ToLower(c.RigType), "pot"))
}

// RecordCatch persists a catch, then best-effort runs the learning
// updaters, cache recompute, and tip update for (species, zone). Learning
// and recompute failures are logged, never returned, so the write itself
// always succeeds once persisted (spec §4.8/§7/§9).
func (e *Engine) RecordCatch(ctx context.Context, c store.Catch) (store.Catch, error) {
	created, err := e.Store.CreateCatch(ctx, c)
	if err != nil {
		return store.Catch{}, fmt.Errorf("record catch: %w", err)
	}

	e.publish(mqtt.TopicCatchEvent, []byte(fmt.Sprintf(`{"species":%q,"zone_id":%q}`, created.Species, created.ZoneID)))

	weight := 1.0
	if isCrabTrapCatch(created) {
		weight = learning.CrabTrapWeightMultiplier
	}

	snap, err := e.currentConditions(ctx)
	if err != nil {
		e.logger.Error("failed to load conditions for learning update", "error", err)
		return created, nil
	}
	cond := learningConditions(snap)

	if _, err := e.updater.UpdateRigEffect(ctx, created.Species, created.ZoneID, created.RigType, created.Timestamp); err != nil {
		e.logger.Error("rig effect update failed", "species", created.Species, "zone_id", created.ZoneID, "error", err)
	}
	if _, err := e.updater.UpdateZoneConditionEffect(ctx, created.Species, created.ZoneID, cond, weight); err != nil {
		e.logger.Error("zone condition effect update failed", "species", created.Species, "zone_id", created.ZoneID, "error", err)
	}
	if _, err := e.updater.UpdateRigConditionEffect(ctx, created.Species, created.RigType, cond, weight); err != nil {
		e.logger.Error("rig condition effect update failed", "species", created.Species, "error", err)
	}

	if err := e.recomputeAndRetip(ctx, created.Species, created.ZoneID, snap); err != nil {
		e.logger.Error("recompute after catch failed", "species", created.Species, "zone_id", created.ZoneID, "error", err)
	}

	return created, nil
}

// RecordBaitLog persists a bait log, then best-effort recomputes the bait
// score plus the bite scores for every gamefish this bait species targets
// (spec §4.8).
func (e *Engine) RecordBaitLog(ctx context.Context, b store.BaitLog) (store.BaitLog, error) {
	created, err := e.Store.CreateBaitLog(ctx, b)
	if err != nil {
		return store.BaitLog{}, fmt.Errorf("record bait log: %w", err)
	}
	e.publish(mqtt.TopicBaitLogEvent, []byte(fmt.Sprintf(`{"bait_species":%q,"zone_id":%q}`, created.BaitSpecies, created.ZoneID)))

	snap, err := e.currentConditions(ctx)
	if err != nil {
		e.logger.Error("failed to load conditions for bait recompute", "error", err)
		return created, nil
	}
	cond := scoringConditions(snap)

	if _, err := e.recalculator.RecalculateBaitScore(ctx, created.BaitSpecies, created.ZoneID, cond); err != nil {
		e.logger.Error("bait score recompute failed", "bait_species", created.BaitSpecies, "zone_id", created.ZoneID, "error", err)
	}

	for _, species := range rules.BaitTargets[created.BaitSpecies] {
		if err := e.recomputeAndRetip(ctx, species, created.ZoneID, snap); err != nil {
			e.logger.Error("bite score recompute after bait log failed", "species", species, "zone_id", created.ZoneID, "error", err)
		}
	}

	return created, nil
}

// RecordPredatorLog persists a predator sighting, then best-effort
// recomputes bite scores for every prey species in that zone (spec §4.8).
func (e *Engine) RecordPredatorLog(ctx context.Context, p store.PredatorLog) (store.PredatorLog, error) {
	created, err := e.Store.CreatePredatorLog(ctx, p)
	if err != nil {
		return store.PredatorLog{}, fmt.Errorf("record predator log: %w", err)
	}
	e.publish(mqtt.TopicPredatorLogEvent, []byte(fmt.Sprintf(`{"predator_kind":%q,"zone_id":%q}`, created.PredatorKind, created.ZoneID)))

	snap, err := e.currentConditions(ctx)
	if err != nil {
		e.logger.Error("failed to load conditions for predator recompute", "error", err)
		return created, nil
	}

	for _, species := range rules.PreySpecies {
		if err := e.recomputeAndRetip(ctx, species, created.ZoneID, snap); err != nil {
			e.logger.Error("bite score recompute after predator log failed", "species", species, "zone_id", created.ZoneID, "error", err)
		}
	}

	return created, nil
}

// recomputeAndRetip runs §4.7's cache recompute followed by §4.9's tip
// update for (species, zoneID), publishing a score-updated event on
// success.
func (e *Engine) recomputeAndRetip(ctx context.Context, species, zoneID string, snap store.EnvironmentSnapshot) error {
	cond := scoringConditions(snap)
	if _, err := e.recalculator.RecalculateBiteScore(ctx, species, zoneID, cond, false); err != nil {
		return fmt.Errorf("recompute bite score: %w", err)
	}
	if err := e.tipGen.UpdateTip(ctx, species, zoneID); err != nil {
		return fmt.Errorf("update tip: %w", err)
	}
	e.publish(mqtt.ScoreUpdatedTopic(species, zoneID), []byte(fmt.Sprintf(`{"species":%q,"zone_id":%q}`, species, zoneID)))
	return nil
}

// CaptureSnapshot runs the environment snapshot capturer (spec §4.3).
func (e *Engine) CaptureSnapshot(ctx context.Context) error {
	return e.capturer.Capture(ctx)
}

// BuildForecast rebuilds the forecast windows (spec §4.10).
func (e *Engine) BuildForecast(ctx context.Context) error {
	return e.builder.Build(ctx, e.Cfg.HoursAhead)
}

// EvaluateAlerts runs the alert evaluator against the freshly built
// forecast windows (spec §4.11).
func (e *Engine) EvaluateAlerts(ctx context.Context) error {
	return e.evaluator.Evaluate(ctx, time.Now())
}

// RecalculateOnDemand recomputes a single (species, zone) pair's bite score
// and tip synchronously, used by the API's cache-miss path on GET
// /zone-bite-scores (spec §6).
func (e *Engine) RecalculateOnDemand(ctx context.Context, species, zoneID string) error {
	snap, err := e.currentConditions(ctx)
	if err != nil {
		return fmt.Errorf("recalculate on demand: %w", err)
	}
	return e.recomputeAndRetip(ctx, species, zoneID, snap)
}

// RecalculatePeriodically selects (species, zone) pairs with recent
// activity and recomputes their bite scores and tips, falling back to
// every Tier 1 species across every zone when nothing recent qualifies
// (spec §4.12).
func (e *Engine) RecalculatePeriodically(ctx context.Context, lookback time.Duration) error {
	pairs, err := e.activePairs(ctx, lookback)
	if err != nil {
		return fmt.Errorf("recalculate periodically: %w", err)
	}

	snap, err := e.currentConditions(ctx)
	if err != nil {
		return fmt.Errorf("recalculate periodically: %w", err)
	}

	for _, pair := range pairs {
		if err := e.recomputeAndRetip(ctx, pair.Species, pair.ZoneID, snap); err != nil {
			e.logger.Error("periodic recompute failed", "species", pair.Species, "zone_id", pair.ZoneID, "error", err)
		}
	}

	e.logger.Info("periodic recalculation complete", "pairs", len(pairs))
	return nil
}

func (e *Engine) activePairs(ctx context.Context, lookback time.Duration) ([]store.ZoneSpeciesPair, error) {
	catchPairs, err := e.Store.RecentCatchZones(ctx, lookback)
	if err != nil {
		return nil, fmt.Errorf("recent catch zones: %w", err)
	}
	predatorPairs, err := e.Store.RecentPredatorZones(ctx, lookback)
	if err != nil {
		return nil, fmt.Errorf("recent predator zones: %w", err)
	}
	baitPairs, err := e.Store.RecentBaitZones(ctx, lookback)
	if err != nil {
		return nil, fmt.Errorf("recent bait zones: %w", err)
	}

	seen := make(map[store.ZoneSpeciesPair]bool)
	var all []store.ZoneSpeciesPair
	for _, group := range [][]store.ZoneSpeciesPair{catchPairs, predatorPairs, baitPairs} {
		for _, p := range group {
			if !seen[p] {
				seen[p] = true
				all = append(all, p)
			}
		}
	}

	if len(all) == 0 {
		for _, species := range rules.TierOneSpecies {
			for _, zoneID := range rules.ZoneIDs {
				all = append(all, store.ZoneSpeciesPair{Species: species, ZoneID: zoneID})
			}
		}
	}
	return all, nil
}
