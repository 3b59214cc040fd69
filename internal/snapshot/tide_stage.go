// Package snapshot captures the periodic EnvironmentSnapshot (spec §4.3):
// tide height/stage, latest weather, time-of-day, and moon phase, fused
// into one append-only row every ten minutes.
package snapshot

import (
	"sort"
	"time"

	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// HighWaterThresholdFt and LowWaterThresholdFt bound the dock's normal
// tide range; heights outside them count as "high"/"low" stage rather than
// "slack" even without active movement.
const HighWaterThresholdFt = 2.0
const LowWaterThresholdFt = 0.5

// tideChangeRateNormalFtPerHr is the rate against which TideChangeRate is
// normalized into [0,1] (spec §4.3).
const tideChangeRateNormalFtPerHr = 2.0

// InterpolateHeight linearly interpolates tide height at t from samples,
// using the two samples nearest t (one on either side when available).
// Returns false if samples is empty.
func InterpolateHeight(samples []store.TideSample, t time.Time) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	sorted := make([]store.TideSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	if t.Before(sorted[0].Timestamp) {
		return sorted[0].HeightFt, true
	}
	if !t.Before(sorted[len(sorted)-1].Timestamp) {
		return sorted[len(sorted)-1].HeightFt, true
	}

	for i := 0; i < len(sorted)-1; i++ {
		a, b := sorted[i], sorted[i+1]
		if !t.Before(a.Timestamp) && t.Before(b.Timestamp) {
			span := b.Timestamp.Sub(a.Timestamp).Seconds()
			if span == 0 {
				return a.HeightFt, true
			}
			frac := t.Sub(a.Timestamp).Seconds() / span
			return a.HeightFt + (b.HeightFt-a.HeightFt)*frac, true
		}
	}
	return sorted[len(sorted)-1].HeightFt, true
}

// TideStageResult is the derived tide stage and normalized change rate at
// one instant (spec §4.3).
type TideStageResult struct {
	Stage          string // incoming, outgoing, high, low, slack
	ChangeRate     float64
	HeightFt       float64
}

// DeriveTideStage compares the interpolated height at t against t±30
// minutes to classify the current tide stage, falling back to height
// thresholds when the tide isn't actively moving (spec §4.3).
func DeriveTideStage(samples []store.TideSample, t time.Time) (TideStageResult, bool) {
	height, ok := InterpolateHeight(samples, t)
	if !ok {
		return TideStageResult{}, false
	}
	before, ok := InterpolateHeight(samples, t.Add(-30*time.Minute))
	if !ok {
		return TideStageResult{}, false
	}
	after, ok := InterpolateHeight(samples, t.Add(30*time.Minute))
	if !ok {
		return TideStageResult{}, false
	}

	delta := after - before
	deltaHours := 1.0 // t-30m to t+30m spans exactly one hour
	rate := (delta / deltaHours) / tideChangeRateNormalFtPerHr
	if rate < 0 {
		rate = -rate
	}
	if rate > 1 {
		rate = 1
	}

	var stage string
	switch {
	case delta > 0.02:
		stage = "incoming"
	case delta < -0.02:
		stage = "outgoing"
	case height >= HighWaterThresholdFt:
		stage = "high"
	case height <= LowWaterThresholdFt:
		stage = "low"
	default:
		stage = "slack"
	}

	return TideStageResult{Stage: stage, ChangeRate: rate, HeightFt: height}, true
}
