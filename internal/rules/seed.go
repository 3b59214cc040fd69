package rules

import (
	"context"
	"fmt"

	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// SeedZones loads the dock's zone geometry (built-in, or overridden by an
// optional YAML file at overlayPath) and upserts every zone into s, run
// once at scheduler startup before the engine starts producing forecasts.
func SeedZones(ctx context.Context, s store.Store, overlayPath string) error {
	geometries, err := LoadZoneOverlay(overlayPath)
	if err != nil {
		return fmt.Errorf("seed zones: %w", err)
	}

	for _, id := range ZoneIDs {
		g, ok := geometries[id]
		if !ok {
			continue
		}
		if err := s.UpsertZone(ctx, store.Zone{
			ZoneID:           g.ZoneID,
			DepthBandMinFt:   g.DepthBandMinFt,
			DepthBandMaxFt:   g.DepthBandMaxFt,
			HasPilings:       g.HasPilings,
			HasCenterPilings: g.HasCenterPilings,
			HasRubble:        g.HasRubble,
			HasLight:         g.HasLight,
			HasOpenWater:     g.HasOpenWater,
			Description:      ZoneDescriptions[id],
		}); err != nil {
			return fmt.Errorf("seed zone %s: %w", id, err)
		}
	}
	return nil
}
