package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// zoneOverlayFile is the shape of an optional YAML file overriding the
// dock's built-in ZoneGeometries, letting an operator correct depth bands
// or structure flags without a code change.
type zoneOverlayFile struct {
	Zones []ZoneGeometry `yaml:"zones"`
}

// LoadZoneOverlay reads an optional YAML file at path and returns the dock's
// zone geometry with any matching zone IDs replaced by the file's values.
// An empty path, or a path that doesn't exist, returns ZoneGeometries
// unchanged.
func LoadZoneOverlay(path string) (map[string]ZoneGeometry, error) {
	geometries := make(map[string]ZoneGeometry, len(ZoneGeometries))
	for id, g := range ZoneGeometries {
		geometries[id] = g
	}

	if path == "" {
		return geometries, nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return geometries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read zone overlay: %w", err)
	}

	var overlay zoneOverlayFile
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("parse zone overlay: %w", err)
	}
	for _, g := range overlay.Zones {
		geometries[g.ZoneID] = g
	}
	return geometries, nil
}
