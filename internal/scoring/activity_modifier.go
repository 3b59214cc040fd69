package scoring

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/saaga0h/bayscan-engine/pkg/store"
)

const recentActivityLookback = 6 * time.Hour
const recentActivityBasePerCatch = 4.0
const recentActivityDecayPerHour = 0.75
const recentActivityCap = 10.0

// RecentActivityModifier rewards a zone for catches logged in the last six
// hours, decaying 25% per hour elapsed and scaling by quantity and the
// species/zone's confidence weight, capped at +10 (spec §4.6).
func RecentActivityModifier(ctx context.Context, s store.Store, species, zoneID string, confidenceWeight float64) (float64, error) {
	since := now().Add(-recentActivityLookback)
	catches, err := s.CatchesSince(ctx, species, zoneID, since)
	if err != nil {
		return 0, fmt.Errorf("recent activity modifier: %w", err)
	}

	var total float64
	ref := now()
	for _, c := range catches {
		hoursAgo := ref.Sub(c.Timestamp).Hours()
		if hoursAgo < 0 {
			hoursAgo = 0
		}
		decay := math.Pow(recentActivityDecayPerHour, hoursAgo)
		qty := float64(c.Quantity)
		if qty <= 0 {
			qty = 1
		}
		total += recentActivityBasePerCatch * decay * qty
	}

	total *= confidenceWeight
	if total > recentActivityCap {
		total = recentActivityCap
	}
	return total, nil
}

// RecentBaitActivityModifier is the bait-score analogue: recent bait-log
// sightings of the species, same decay shape, smaller base and cap (spec
// §4.6 bait path).
const recentBaitLookback = 6 * time.Hour
const recentBaitBasePerLog = 3.0
const recentBaitCap = 8.0

func RecentBaitActivityModifier(ctx context.Context, s store.Store, baitSpecies, zoneID string) (float64, error) {
	since := now().Add(-recentBaitLookback)
	logs, err := s.BaitLogsSince(ctx, baitSpecies, zoneID, since)
	if err != nil {
		return 0, fmt.Errorf("recent bait activity modifier: %w", err)
	}

	var total float64
	ref := now()
	for _, l := range logs {
		hoursAgo := ref.Sub(l.Timestamp).Hours()
		if hoursAgo < 0 {
			hoursAgo = 0
		}
		decay := math.Pow(recentActivityDecayPerHour, hoursAgo)
		qtyFactor := quantityEstimateFactor(l.QuantityEstimate)
		total += recentBaitBasePerLog * decay * qtyFactor
	}

	if total > recentBaitCap {
		total = recentBaitCap
	}
	return total, nil
}

func quantityEstimateFactor(estimate string) float64 {
	switch estimate {
	case "plenty":
		return 1.5
	case "few":
		return 1.0
	case "none":
		return 0.0
	default:
		return 1.0
	}
}
