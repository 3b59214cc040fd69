// Package alert promotes hot forecast windows into deduplicated alert
// records (spec §4.11), run immediately after the forecast window builder
// on every scheduler tick.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// maxWindowsPerTick is well above the 48-hour / 2-hour-window ceiling the
// forecast builder ever produces (spec §4.10).
const maxWindowsPerTick = 100

// Evaluator compares freshly-built forecast windows against per-species
// thresholds and maintains the Alert table.
type Evaluator struct {
	store      store.Store
	thresholds map[string]float64
	logger     *slog.Logger
}

// NewEvaluator builds an Evaluator against the engine's store and the
// configured species→threshold map.
func NewEvaluator(s store.Store, thresholds map[string]float64, logger *slog.Logger) *Evaluator {
	return &Evaluator{store: s, thresholds: thresholds, logger: logger}
}

// Evaluate walks every forecast window from now through the horizon,
// raising a new alert for any species whose bite score clears its
// threshold and which has no active alert for that window yet, then
// deactivates every alert whose window has already ended.
func (e *Evaluator) Evaluate(ctx context.Context, now time.Time) error {
	windows, err := e.store.ForecastWindowsFrom(ctx, now, maxWindowsPerTick)
	if err != nil {
		return fmt.Errorf("evaluate alerts: %w", err)
	}

	raised := 0
	for _, w := range windows {
		forecasts, err := e.store.SpeciesForecastsForWindow(ctx, w.ID)
		if err != nil {
			e.logger.Warn("skipping window, could not load forecasts", "window_id", w.ID, "error", err)
			continue
		}

		for _, f := range forecasts {
			threshold, ok := e.thresholds[f.Species]
			if !ok || f.BiteScore < threshold {
				continue
			}

			existing, err := e.store.ActiveAlert(ctx, f.Species, w.Start)
			if err != nil {
				e.logger.Warn("skipping alert check", "species", f.Species, "window_start", w.Start, "error", err)
				continue
			}
			if existing != nil {
				continue
			}

			alert := store.Alert{
				Species:     f.Species,
				WindowStart: w.Start,
				WindowEnd:   w.End,
				BiteScore:   f.BiteScore,
				Message:     formatMessage(f.Species, f.BiteScore, w.Start),
				IsActive:    true,
				CreatedAt:   now,
			}
			if _, err := e.store.UpsertAlert(ctx, alert); err != nil {
				return fmt.Errorf("evaluate alerts: raise alert: %w", err)
			}
			raised++
		}
	}

	deactivated, err := e.store.DeactivateExpiredAlerts(ctx, now)
	if err != nil {
		return fmt.Errorf("evaluate alerts: deactivate expired: %w", err)
	}

	if raised > 0 || deactivated > 0 {
		e.logger.Info("evaluated alerts", "raised", raised, "deactivated", deactivated)
	}
	return nil
}

func formatMessage(species string, biteScore float64, windowStart time.Time) string {
	return fmt.Sprintf("%s bite is heating up at %s — score %.0f", rules.DisplayName(species), windowStart.Format("3:04 PM"), biteScore)
}
