package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// Confidence levels and the recent-activity weight each carries (spec §4.7):
// fewer logged catches means the recent-activity modifier should count for
// less, since a single lucky strike shouldn't swing the cached score.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// ConfidenceResult bundles the level and the weight the bite-score formula
// applies to RecentActivityModifier.
type ConfidenceResult struct {
	Level  string
	Weight float64
}

// SpeciesZoneConfidence counts logged catches for (species, zoneID) and
// bands the result into low/medium/high confidence (spec §4.7): under 10
// catches is low (weight 0.3), under 50 is medium (weight 0.6), else high
// (weight 1.0).
func SpeciesZoneConfidence(ctx context.Context, s store.Store, species, zoneID string) (ConfidenceResult, error) {
	count, err := s.CatchCount(ctx, species, zoneID)
	if err != nil {
		return ConfidenceResult{}, fmt.Errorf("species zone confidence: %w", err)
	}

	switch {
	case count < 10:
		return ConfidenceResult{Level: ConfidenceLow, Weight: 0.3}, nil
	case count < 50:
		return ConfidenceResult{Level: ConfidenceMedium, Weight: 0.6}, nil
	default:
		return ConfidenceResult{Level: ConfidenceHigh, Weight: 1.0}, nil
	}
}

// now is a package-level indirection so tests can pin the reference time
// recent-activity and predator decay windows are measured against.
var now = time.Now
