package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/saaga0h/bayscan-engine/pkg/store"
)

func TestScoreRating_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "Poor"},
		{20, "Poor"},
		{21, "Fair"},
		{40, "Fair"},
		{41, "Good"},
		{60, "Good"},
		{61, "Great"},
		{80, "Great"},
		{81, "Excellent"},
		{100, "Excellent"},
	}
	for _, tt := range tests {
		if got := ScoreRating(tt.score); got != tt.want {
			t.Errorf("ScoreRating(%f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestClamp_BoundsScore(t *testing.T) {
	if got := clamp(-5); got != 0 {
		t.Errorf("expected clamp(-5) = 0, got %f", got)
	}
	if got := clamp(150); got != 100 {
		t.Errorf("expected clamp(150) = 100, got %f", got)
	}
	if got := clamp(55); got != 55 {
		t.Errorf("expected clamp(55) = 55, got %f", got)
	}
}

func TestCalculateBiteScore_TierOneUsesFullFormula(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	when := time.Date(2026, time.July, 15, 8, 0, 0, 0, time.UTC)

	cond := Conditions{
		TideStage:     "incoming",
		WindSpeedMph:  8,
		WindDirection: "SE",
		PressureTrend: "falling",
		WaterClarity:  "clear",
		TimeOfDay:     "dawn",
	}

	result, err := CalculateBiteScore(ctx, s, "speckled_trout", "Zone 1", cond, when)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tier != 1 {
		t.Fatalf("expected speckled_trout to be tier 1, got %d", result.Tier)
	}
	if result.Score < 0 || result.Score > 100 {
		t.Errorf("expected score within [0,100], got %f", result.Score)
	}
	if result.Confidence.Level != ConfidenceLow {
		t.Errorf("expected low confidence with no logged catches, got %s", result.Confidence.Level)
	}
}

func TestCalculateBiteScore_TierTwoUsesSimplifiedFormula(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	when := time.Date(2026, time.July, 15, 8, 0, 0, 0, time.UTC)

	cond := Conditions{TideStage: "incoming", TimeOfDay: "dawn"}

	result, err := CalculateBiteScore(ctx, s, "croaker", "Zone 2", cond, when)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tier != 2 {
		t.Fatalf("expected croaker to be tier 2, got %d", result.Tier)
	}
	if result.RecentActivity != 0 || result.PredatorPenalty != 0 {
		t.Errorf("expected tier 2 path to skip recent-activity and predator modifiers, got activity=%f predator=%f",
			result.RecentActivity, result.PredatorPenalty)
	}
	if result.Score < 0 || result.Score > 100 {
		t.Errorf("expected score within [0,100], got %f", result.Score)
	}
}

func TestCalculateBiteScore_RecentCatchesRaiseConfidence(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	when := time.Date(2026, time.July, 15, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		if _, err := s.CreateCatch(ctx, store.Catch{
			Species:   "speckled_trout",
			ZoneID:    "Zone 1",
			Timestamp: when.Add(-time.Hour),
		}); err != nil {
			t.Fatalf("seed catch: %v", err)
		}
	}

	cond := Conditions{TideStage: "incoming", WaterClarity: "clear"}
	result, err := CalculateBiteScore(ctx, s, "speckled_trout", "Zone 1", cond, when)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confidence.Level != ConfidenceMedium {
		t.Errorf("expected medium confidence at 12 logged catches, got %s", result.Confidence.Level)
	}
}
