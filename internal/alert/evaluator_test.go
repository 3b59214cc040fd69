package alert

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/saaga0h/bayscan-engine/pkg/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEvaluate_RaisesAlertAboveThreshold(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, time.July, 15, 6, 0, 0, 0, time.UTC)

	window := store.ForecastWindow{ID: "w1", Start: now.Add(time.Hour), End: now.Add(3 * time.Hour)}
	forecast := store.SpeciesForecast{WindowID: "w1", Species: "speckled_trout", BiteScore: 85, BiteLabel: "HOT"}
	if err := s.ReplaceForecastWindows(ctx, []store.ForecastWindow{window}, []store.SpeciesForecast{forecast}); err != nil {
		t.Fatalf("seed windows: %v", err)
	}

	eval := NewEvaluator(s, map[string]float64{"speckled_trout": 80}, testLogger())
	if err := eval.Evaluate(ctx, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alerts, err := s.ActiveAlerts(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing alerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 active alert, got %d", len(alerts))
	}
	if alerts[0].Species != "speckled_trout" {
		t.Errorf("expected alert for speckled_trout, got %s", alerts[0].Species)
	}
}

func TestEvaluate_SkipsBelowThreshold(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, time.July, 15, 6, 0, 0, 0, time.UTC)

	window := store.ForecastWindow{ID: "w1", Start: now.Add(time.Hour), End: now.Add(3 * time.Hour)}
	forecast := store.SpeciesForecast{WindowID: "w1", Species: "speckled_trout", BiteScore: 60, BiteLabel: "DECENT"}
	if err := s.ReplaceForecastWindows(ctx, []store.ForecastWindow{window}, []store.SpeciesForecast{forecast}); err != nil {
		t.Fatalf("seed windows: %v", err)
	}

	eval := NewEvaluator(s, map[string]float64{"speckled_trout": 80}, testLogger())
	if err := eval.Evaluate(ctx, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alerts, err := s.ActiveAlerts(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing alerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts below threshold, got %d", len(alerts))
	}
}

func TestEvaluate_DoesNotDuplicateActiveAlert(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, time.July, 15, 6, 0, 0, 0, time.UTC)

	window := store.ForecastWindow{ID: "w1", Start: now.Add(time.Hour), End: now.Add(3 * time.Hour)}
	forecast := store.SpeciesForecast{WindowID: "w1", Species: "speckled_trout", BiteScore: 90, BiteLabel: "HOT"}
	if err := s.ReplaceForecastWindows(ctx, []store.ForecastWindow{window}, []store.SpeciesForecast{forecast}); err != nil {
		t.Fatalf("seed windows: %v", err)
	}

	eval := NewEvaluator(s, map[string]float64{"speckled_trout": 80}, testLogger())
	if err := eval.Evaluate(ctx, now); err != nil {
		t.Fatalf("unexpected error on first evaluate: %v", err)
	}
	if err := eval.Evaluate(ctx, now); err != nil {
		t.Fatalf("unexpected error on second evaluate: %v", err)
	}

	alerts, err := s.ActiveAlerts(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing alerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected evaluating twice to raise only 1 alert, got %d", len(alerts))
	}
}

func TestEvaluate_DeactivatesExpiredAlerts(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, time.July, 15, 6, 0, 0, 0, time.UTC)

	window := store.ForecastWindow{ID: "w1", Start: now.Add(-3 * time.Hour), End: now.Add(-time.Hour)}
	forecast := store.SpeciesForecast{WindowID: "w1", Species: "speckled_trout", BiteScore: 90, BiteLabel: "HOT"}
	if err := s.ReplaceForecastWindows(ctx, []store.ForecastWindow{window}, []store.SpeciesForecast{forecast}); err != nil {
		t.Fatalf("seed windows: %v", err)
	}
	if _, err := s.UpsertAlert(ctx, store.Alert{
		Species:     "speckled_trout",
		WindowStart: window.Start,
		WindowEnd:   window.End,
		BiteScore:   90,
		IsActive:    true,
	}); err != nil {
		t.Fatalf("seed alert: %v", err)
	}

	eval := NewEvaluator(s, map[string]float64{"speckled_trout": 80}, testLogger())
	if err := eval.Evaluate(ctx, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alerts, err := s.ActiveAlerts(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing alerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Fatalf("expected the expired alert to be deactivated, got %d active", len(alerts))
	}
}
