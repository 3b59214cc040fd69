package snapshot

import (
	"testing"
	"time"

	"github.com/saaga0h/bayscan-engine/pkg/store"
)

func sample(t time.Time, height float64) store.TideSample {
	return store.TideSample{Timestamp: t, HeightFt: height}
}

func TestInterpolateHeight_EmptyReturnsFalse(t *testing.T) {
	if _, ok := InterpolateHeight(nil, time.Now()); ok {
		t.Error("expected false for empty samples")
	}
}

func TestInterpolateHeight_BetweenTwoSamples(t *testing.T) {
	base := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
	samples := []store.TideSample{
		sample(base, 1.0),
		sample(base.Add(time.Hour), 2.0),
	}
	got, ok := InterpolateHeight(samples, base.Add(30*time.Minute))
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got != 1.5 {
		t.Errorf("expected interpolated height 1.5, got %f", got)
	}
}

func TestInterpolateHeight_BeforeAndAfterRangeClamp(t *testing.T) {
	base := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
	samples := []store.TideSample{
		sample(base, 1.0),
		sample(base.Add(time.Hour), 2.0),
	}
	if got, _ := InterpolateHeight(samples, base.Add(-time.Hour)); got != 1.0 {
		t.Errorf("expected clamp to first sample's height, got %f", got)
	}
	if got, _ := InterpolateHeight(samples, base.Add(2*time.Hour)); got != 2.0 {
		t.Errorf("expected clamp to last sample's height, got %f", got)
	}
}

func TestDeriveTideStage_Incoming(t *testing.T) {
	base := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
	samples := []store.TideSample{
		sample(base.Add(-time.Hour), 0.5),
		sample(base, 1.0),
		sample(base.Add(time.Hour), 1.5),
	}
	got, ok := DeriveTideStage(samples, base)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got.Stage != "incoming" {
		t.Errorf("expected incoming stage, got %q", got.Stage)
	}
	if got.ChangeRate <= 0 {
		t.Errorf("expected a positive change rate, got %f", got.ChangeRate)
	}
}

func TestDeriveTideStage_Outgoing(t *testing.T) {
	base := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
	samples := []store.TideSample{
		sample(base.Add(-time.Hour), 1.5),
		sample(base, 1.0),
		sample(base.Add(time.Hour), 0.5),
	}
	got, ok := DeriveTideStage(samples, base)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got.Stage != "outgoing" {
		t.Errorf("expected outgoing stage, got %q", got.Stage)
	}
}

func TestDeriveTideStage_HighWhenFlatAndAboveThreshold(t *testing.T) {
	base := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
	samples := []store.TideSample{
		sample(base.Add(-time.Hour), 2.5),
		sample(base, 2.5),
		sample(base.Add(time.Hour), 2.5),
	}
	got, ok := DeriveTideStage(samples, base)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got.Stage != "high" {
		t.Errorf("expected high stage for flat tide above threshold, got %q", got.Stage)
	}
}

func TestDeriveTideStage_LowWhenFlatAndBelowThreshold(t *testing.T) {
	base := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
	samples := []store.TideSample{
		sample(base.Add(-time.Hour), 0.2),
		sample(base, 0.2),
		sample(base.Add(time.Hour), 0.2),
	}
	got, ok := DeriveTideStage(samples, base)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got.Stage != "low" {
		t.Errorf("expected low stage for flat tide below threshold, got %q", got.Stage)
	}
}

func TestDeriveTideStage_SlackWhenFlatAndMidRange(t *testing.T) {
	base := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
	samples := []store.TideSample{
		sample(base.Add(-time.Hour), 1.2),
		sample(base, 1.2),
		sample(base.Add(time.Hour), 1.2),
	}
	got, ok := DeriveTideStage(samples, base)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got.Stage != "slack" {
		t.Errorf("expected slack stage for flat mid-range tide, got %q", got.Stage)
	}
}
