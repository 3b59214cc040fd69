// Package tip auto-generates short, human-readable fishing tips per
// species+zone from cached bite scores, learned rig/condition preferences,
// and recent catch history (spec §4.9 tips path).
package tip

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/learning"
	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// minBiteScoreForTip is the floor below which no tip is generated: a poor
// score isn't worth recommending a spot for.
const minBiteScoreForTip = 50.0

// bestBetThreshold is the score above which the tip leads with "is your
// best bet" rather than the softer "Try <zone>".
const bestBetThreshold = 70.0

// bestRigMinUses is the tip generator's own best-rig threshold (spec §9
// open question #6: 2, not the original source's default of 3).
const bestRigMinUses = 2.0

// bestBaitLookback bounds how far back a logged catch counts toward "most
// commonly used bait" for a species+zone.
const bestBaitLookback = 30 * 24 * time.Hour

// Generator builds and persists SpeciesZoneTip rows.
type Generator struct {
	store   store.Store
	updater *learning.Updater
	logger  *slog.Logger
}

// NewGenerator builds a Generator against the engine's store and learning
// updater.
func NewGenerator(s store.Store, updater *learning.Updater, logger *slog.Logger) *Generator {
	return &Generator{store: s, updater: updater, logger: logger}
}

// BestBaitForZone returns the most commonly logged bait for species+zoneID
// over the last 30 days, falling back to the species' default bait.
func (g *Generator) BestBaitForZone(ctx context.Context, species, zoneID string) (string, error) {
	since := time.Now().Add(-bestBaitLookback)
	bait, ok, err := g.store.MostFrequentBait(ctx, species, zoneID, since)
	if err != nil {
		return "", fmt.Errorf("best bait for zone: %w", err)
	}
	if ok && bait != "" {
		return bait, nil
	}
	if def, ok := rules.DefaultBaits[species]; ok {
		return def, nil
	}
	return "live shrimp", nil
}

// BestTideForZone reads the learned ZoneConditionEffect weights for
// species+zoneID and recommends the dominant tide band, defaulting to "on
// moving tide" when data is sparse or the signal is weak.
func (g *Generator) BestTideForZone(ctx context.Context, species, zoneID string) (string, error) {
	band, err := g.store.DominantTideBand(ctx, species, zoneID)
	if err != nil {
		return "", fmt.Errorf("best tide for zone: %w", err)
	}
	switch band {
	case "incoming":
		return "on incoming tide", nil
	case "outgoing":
		return "on outgoing tide", nil
	case "moving":
		return "on any moving tide", nil
	default:
		return "on moving tide", nil
	}
}

// GenerateTip builds the tip sentence for species+zoneID, or returns "",
// false when the cached bite score doesn't clear minBiteScoreForTip or no
// score is cached yet.
func (g *Generator) GenerateTip(ctx context.Context, species, zoneID string) (string, bool, error) {
	score, err := g.store.GetBiteScore(ctx, species, zoneID)
	if err != nil {
		return "", false, fmt.Errorf("generate tip: %w", err)
	}
	if score == nil || score.Score < minBiteScoreForTip {
		return "", false, nil
	}

	rig, ok, err := g.updater.BestRigForZone(ctx, species, zoneID, bestRigMinUses)
	if err != nil {
		return "", false, fmt.Errorf("generate tip: %w", err)
	}
	if !ok || rig == "" {
		rig = rules.DefaultRigs[species]
		if rig == "" {
			rig = "jig"
		}
	}

	bait, err := g.BestBaitForZone(ctx, species, zoneID)
	if err != nil {
		return "", false, err
	}

	structure, ok := rules.ZoneDescriptions[zoneID]
	if !ok {
		structure = zoneID
	}

	tide, err := g.BestTideForZone(ctx, species, zoneID)
	if err != nil {
		return "", false, err
	}

	intro := fmt.Sprintf("Try %s.", zoneID)
	if score.Score >= bestBetThreshold {
		intro = fmt.Sprintf("%s is your best bet.", zoneID)
	}

	rigDisplay := strings.ReplaceAll(rig, "_", " ")

	var tip string
	switch zoneID {
	case "Zone 1":
		tip = fmt.Sprintf("%s Fish a %s with %s around the %s %s.", intro, rigDisplay, bait, structure, tide)
	case "Zone 5":
		tip = fmt.Sprintf("%s Work a %s with %s along the %s %s.", intro, rigDisplay, bait, structure, tide)
	default:
		tip = fmt.Sprintf("%s Fish a %s with %s %s.", intro, rigDisplay, bait, tide)
	}

	return tip, true, nil
}

// UpdateTip generates and persists (or deletes, if no longer viable) the
// cached tip for species+zoneID.
func (g *Generator) UpdateTip(ctx context.Context, species, zoneID string) error {
	tipText, ok, err := g.GenerateTip(ctx, species, zoneID)
	if err != nil {
		return fmt.Errorf("update tip: %w", err)
	}
	if !ok {
		if err := g.store.DeleteTip(ctx, species, zoneID); err != nil {
			return fmt.Errorf("update tip: %w", err)
		}
		g.logger.Info("deleted tip, score too low", "species", species, "zone", zoneID)
		return nil
	}

	tip := store.SpeciesZoneTip{Species: species, ZoneID: zoneID, TipText: tipText, LastUpdated: time.Now()}
	if err := g.store.UpsertTip(ctx, tip); err != nil {
		return fmt.Errorf("update tip: %w", err)
	}
	g.logger.Info("updated tip", "species", species, "zone", zoneID, "tip", tipText)
	return nil
}

// RegenerateAll rebuilds tips for every Tier 1 species across every zone,
// or just the given species when non-empty.
func (g *Generator) RegenerateAll(ctx context.Context, species string) (int, error) {
	speciesList := rules.TierOneSpecies
	if species != "" {
		speciesList = []string{species}
	}

	count := 0
	for _, sp := range speciesList {
		for _, zoneID := range rules.ZoneIDs {
			before, err := g.store.GetTip(ctx, sp, zoneID)
			if err != nil {
				return count, fmt.Errorf("regenerate all tips: %w", err)
			}
			if err := g.UpdateTip(ctx, sp, zoneID); err != nil {
				return count, fmt.Errorf("regenerate all tips: %w", err)
			}
			after, err := g.store.GetTip(ctx, sp, zoneID)
			if err != nil {
				return count, fmt.Errorf("regenerate all tips: %w", err)
			}
			if after != nil && (before == nil || before.TipText != after.TipText) {
				count++
			}
		}
	}

	g.logger.Info("regenerated tips", "count", count)
	return count, nil
}
