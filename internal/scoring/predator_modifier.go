package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

const predatorLookback = 4 * time.Hour
const predatorBasePenalty = -8.0

// PredatorModifier applies a time-decayed penalty to prey species when a
// predator was sighted in the zone within the last four hours: the penalty
// decays linearly from the full -8.0 down to 0 over the window, using only
// the single most recent sighting (spec §4.6). Non-prey species are never
// penalized.
func PredatorModifier(ctx context.Context, s store.Store, species, zoneID string) (float64, error) {
	if !rules.IsPreySpecies(species) {
		return 0, nil
	}

	since := now().Add(-predatorLookback)
	sighting, err := s.LatestPredatorLog(ctx, zoneID, since)
	if err != nil {
		return 0, fmt.Errorf("predator modifier: %w", err)
	}
	if sighting == nil {
		return 0, nil
	}

	hoursAgo := now().Sub(sighting.Timestamp).Hours()
	if hoursAgo < 0 {
		hoursAgo = 0
	}
	if hoursAgo >= predatorLookback.Hours() {
		return 0, nil
	}

	remaining := 1.0 - (hoursAgo / predatorLookback.Hours())
	return predatorBasePenalty * remaining, nil
}
