package rules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/saaga0h/bayscan-engine/pkg/store"
)

func TestLoadZoneOverlay_EmptyPathReturnsBuiltins(t *testing.T) {
	geometries, err := LoadZoneOverlay("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(geometries) != len(ZoneGeometries) {
		t.Fatalf("expected %d zones, got %d", len(ZoneGeometries), len(geometries))
	}
	if geometries["Zone 1"].DepthBandMaxFt != ZoneGeometries["Zone 1"].DepthBandMaxFt {
		t.Error("expected built-in geometry to be returned unchanged")
	}
}

func TestLoadZoneOverlay_MissingFileReturnsBuiltins(t *testing.T) {
	geometries, err := LoadZoneOverlay(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(geometries) != len(ZoneGeometries) {
		t.Fatalf("expected fallback to built-ins, got %d zones", len(geometries))
	}
}

func TestLoadZoneOverlay_OverridesMatchingZone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	contents := `
zones:
  - zone_id: "Zone 1"
    depth_band_min_ft: 1
    depth_band_max_ft: 12
    has_pilings: false
    has_rubble: true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write overlay file: %v", err)
	}

	geometries, err := LoadZoneOverlay(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geometries["Zone 1"].DepthBandMaxFt != 12 {
		t.Errorf("expected overridden depth of 12, got %d", geometries["Zone 1"].DepthBandMaxFt)
	}
	if geometries["Zone 1"].HasPilings {
		t.Error("expected overlay to clear has_pilings")
	}
	if geometries["Zone 2"].DepthBandMaxFt != ZoneGeometries["Zone 2"].DepthBandMaxFt {
		t.Error("expected zones absent from the overlay to keep their built-in values")
	}
}

func TestSeedZones(t *testing.T) {
	s := store.NewMemoryStore()
	if err := SeedZones(context.Background(), s, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zones, err := s.Zones(context.Background())
	if err != nil {
		t.Fatalf("unexpected error listing zones: %v", err)
	}
	if len(zones) != len(ZoneIDs) {
		t.Fatalf("expected %d seeded zones, got %d", len(ZoneIDs), len(zones))
	}
	for _, z := range zones {
		if z.Description != ZoneDescriptions[z.ZoneID] {
			t.Errorf("expected zone %s to carry its description", z.ZoneID)
		}
	}
}
