package cache

import (
	"strings"
	"testing"

	"github.com/saaga0h/bayscan-engine/internal/scoring"
)

func TestBuildReasonSummary_FallsBackToSeasonalBaseline(t *testing.T) {
	cond := scoring.Conditions{TideStage: "slack", WaterClarity: "stained"}
	result := scoring.BiteScoreResult{SeasonalBaseline: 50}
	got := BuildReasonSummary(cond, result, "redfish", "Zone 3")
	want := "Seasonal baseline for redfish in Zone 3"
	if got != want {
		t.Errorf("expected fallback summary %q, got %q", want, got)
	}
}

func TestBuildReasonSummary_MentionsRecentActivity(t *testing.T) {
	cond := scoring.Conditions{TideStage: "incoming", WaterClarity: "clear"}
	result := scoring.BiteScoreResult{RecentActivity: 4}
	got := BuildReasonSummary(cond, result, "redfish", "Zone 3")
	if !strings.Contains(got, "recent catches in Zone 3") {
		t.Errorf("expected recent-activity mention, got %q", got)
	}
}

func TestBuildReasonSummary_MentionsPredatorActivity(t *testing.T) {
	cond := scoring.Conditions{TideStage: "incoming", WaterClarity: "clear"}
	result := scoring.BiteScoreResult{PredatorPenalty: -5}
	got := BuildReasonSummary(cond, result, "speckled_trout", "Zone 1")
	if !strings.Contains(got, "predator activity") {
		t.Errorf("expected predator mention, got %q", got)
	}
}

func TestBuildReasonSummary_CapitalizesFirstLetter(t *testing.T) {
	cond := scoring.Conditions{TideStage: "outgoing", WaterClarity: "muddy"}
	result := scoring.BiteScoreResult{ConditionMatch: -6}
	got := BuildReasonSummary(cond, result, "flounder", "Zone 4")
	if got == "" || got[0] < 'A' || got[0] > 'Z' {
		t.Errorf("expected summary to start with an uppercase letter, got %q", got)
	}
}

func TestBuildBaitReasonSummary(t *testing.T) {
	result := scoring.BaitScoreResult{SeasonalBaseline: 60, ConditionMatch: 10}
	got := BuildBaitReasonSummary(result)
	want := "Seasonal: 60, Conditions: 10"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
