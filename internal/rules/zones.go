package rules

// ZoneIDs enumerates the dock's five static fishing zones (spec §3's Zone
// entity), grounded on tip_generation_service.py's ZONE_DESCRIPTIONS.
var ZoneIDs = []string{"Zone 1", "Zone 2", "Zone 3", "Zone 4", "Zone 5"}

// ZoneDescriptions gives the structure phrase used in generated tips.
var ZoneDescriptions = map[string]string{
	"Zone 1": "rubble and north pilings",
	"Zone 2": "open water",
	"Zone 3": "north pilings",
	"Zone 4": "green light line",
	"Zone 5": "deep north piling line with center pilings",
}

// ZoneGeometry is the static physical description of one zone, seeded into
// pkg/store.Zone at startup and consulted by internal/subscore's structure
// sub-score.
type ZoneGeometry struct {
	ZoneID           string `yaml:"zone_id"`
	DepthBandMinFt   int    `yaml:"depth_band_min_ft"`
	DepthBandMaxFt   int    `yaml:"depth_band_max_ft"`
	HasPilings       bool   `yaml:"has_pilings"`
	HasCenterPilings bool   `yaml:"has_center_pilings"`
	HasRubble        bool   `yaml:"has_rubble"`
	HasLight         bool   `yaml:"has_light"`
	HasOpenWater     bool   `yaml:"has_open_water"`
}

// ZoneGeometries is the fixed dock layout.
var ZoneGeometries = map[string]ZoneGeometry{
	"Zone 1": {ZoneID: "Zone 1", DepthBandMinFt: 2, DepthBandMaxFt: 6, HasPilings: true, HasRubble: true},
	"Zone 2": {ZoneID: "Zone 2", DepthBandMinFt: 4, DepthBandMaxFt: 10, HasOpenWater: true},
	"Zone 3": {ZoneID: "Zone 3", DepthBandMinFt: 3, DepthBandMaxFt: 8, HasPilings: true},
	"Zone 4": {ZoneID: "Zone 4", DepthBandMinFt: 2, DepthBandMaxFt: 5, HasLight: true},
	"Zone 5": {ZoneID: "Zone 5", DepthBandMinFt: 10, DepthBandMaxFt: 20, HasPilings: true, HasCenterPilings: true},
}

// DefaultRigs is the species -> rig fallback used when no learned
// RigEffect data exists yet for a (species, zone) pair.
var DefaultRigs = map[string]string{
	"speckled_trout": "popping_cork",
	"redfish":        "jig",
	"flounder":       "jig",
	"sheepshead":     "bottom_rig",
	"black_drum":     "bottom_rig",
	"croaker":        "bottom_rig",
	"white_trout":    "jig",
}

// DefaultBaits is the species -> bait fallback used when no recent catch
// history exists for a (species, zone) pair.
var DefaultBaits = map[string]string{
	"speckled_trout": "live shrimp",
	"redfish":        "live shrimp",
	"flounder":       "mud minnow",
	"sheepshead":     "fiddler crab",
	"black_drum":     "shrimp",
	"croaker":        "shrimp",
	"white_trout":    "shrimp",
}
