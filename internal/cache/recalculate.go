package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/internal/scoring"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// Recalculator owns the bite/bait score cache: every score change flows
// through RecalculateBiteScore or RecalculateBaitScore, never through a
// direct store write from elsewhere.
type Recalculator struct {
	store  store.Store
	logger *slog.Logger
}

// NewRecalculator builds a Recalculator against the engine's store.
func NewRecalculator(s store.Store, logger *slog.Logger) *Recalculator {
	return &Recalculator{store: s, logger: logger}
}

// RecalculateBiteScore recomputes the raw bite score for species+zoneID,
// smooths it against the cached value, and upserts the result (spec
// §4.9). forceRecalc bypasses smoothing against the cached value and
// writes the unsmoothed initial score instead.
func (r *Recalculator) RecalculateBiteScore(ctx context.Context, species, zoneID string, cond scoring.Conditions, forceRecalc bool) (*store.BiteScore, error) {
	now := time.Now()

	totalCatches, err := r.store.CatchCount(ctx, species, zoneID)
	if err != nil {
		return nil, fmt.Errorf("recalculate bite score: %w", err)
	}

	raw, err := scoring.CalculateBiteScore(ctx, r.store, species, zoneID, cond, now)
	if err != nil {
		return nil, fmt.Errorf("recalculate bite score: %w", err)
	}

	old, err := r.store.GetBiteScore(ctx, species, zoneID)
	if err != nil {
		return nil, fmt.Errorf("recalculate bite score: %w", err)
	}

	var newScore float64
	if old != nil && !forceRecalc {
		newScore = Smooth(old.Score, raw.Score, true, totalCatches)
		r.logger.Info("smoothed bite score",
			"species", species, "zone", zoneID,
			"old_score", old.Score, "new_score", newScore, "raw_score", raw.Score)
	} else {
		newScore = Smooth(0, raw.Score, false, totalCatches)
		r.logger.Info("initial bite score",
			"species", species, "zone", zoneID, "score", newScore)
	}

	updated := store.BiteScore{
		Species:       species,
		ZoneID:        zoneID,
		Score:         newScore,
		Rating:        scoring.ScoreRating(newScore),
		Confidence:    raw.Confidence.Level,
		ReasonSummary: BuildReasonSummary(cond, raw, species, zoneID),
		LastUpdated:   now,
	}

	if err := r.store.UpsertBiteScore(ctx, updated); err != nil {
		return nil, fmt.Errorf("recalculate bite score: %w", err)
	}
	return &updated, nil
}

// RecalculateBaitScore recomputes a bait species' cached score. Unlike bite
// scores, bait scores are never smoothed against a previous value: the
// original source writes the raw score directly every time (spec §4.9).
func (r *Recalculator) RecalculateBaitScore(ctx context.Context, baitSpecies, zoneID string, cond scoring.Conditions) (*store.BaitScore, error) {
	now := time.Now()

	raw, err := scoring.CalculateBaitScore(ctx, r.store, baitSpecies, zoneID, cond, now)
	if err != nil {
		return nil, fmt.Errorf("recalculate bait score: %w", err)
	}

	updated := store.BaitScore{
		BaitSpecies:   baitSpecies,
		ZoneID:        zoneID,
		Score:         raw.Score,
		Rating:        scoring.ScoreRating(raw.Score),
		ReasonSummary: BuildBaitReasonSummary(raw),
		LastUpdated:   now,
	}

	if err := r.store.UpsertBaitScore(ctx, updated); err != nil {
		return nil, fmt.Errorf("recalculate bait score: %w", err)
	}
	return &updated, nil
}

// RecalculateAllZonesForSpecies recalculates species' bite score across
// every known dock zone. Nothing in this module calls it; a logged catch
// recomputes only its own zone.
func (r *Recalculator) RecalculateAllZonesForSpecies(ctx context.Context, species string, condByZone func(zoneID string) scoring.Conditions) error {
	for _, zoneID := range rules.ZoneIDs {
		if _, err := r.RecalculateBiteScore(ctx, species, zoneID, condByZone(zoneID), false); err != nil {
			return fmt.Errorf("recalculate all zones for species %s: %w", species, err)
		}
	}
	return nil
}
