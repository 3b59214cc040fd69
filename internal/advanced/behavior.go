package advanced

// SpeciesBehavior is the cheat-sheet payload for GET /species/{key}.
type SpeciesBehavior struct {
	BestBaits       []string
	BestTide        string
	BestZones       []string
	BehaviorSummary string
}

var speciesBehaviors = map[string]SpeciesBehavior{
	"speckled_trout": {
		BestBaits:       []string{"Live shrimp", "Soft plastics (paddle tail)", "Popping cork w/ shrimp", "Small topwater plugs"},
		BestTide:        "Moving tide (rising or falling), especially first 2 hours",
		BestZones:       []string{"Zone 2", "Zone 3", "Zone 4"},
		BehaviorSummary: "Speckled trout are aggressive feeders during moving tides. Target shallow edges during good bites, deeper structure when slow. Use natural presentations in clear water.",
	},
	"redfish": {
		BestBaits:       []string{"Live shrimp", "Cut mullet", "Gold spoons", "Paddle tail jigs"},
		BestTide:        "Rising tide pushing into shallows, or high slack",
		BestZones:       []string{"Zone 1", "Zone 2", "Zone 3"},
		BehaviorSummary: "Redfish prefer shallow water and structure. They're less tide-dependent than trout. Target shorelines, rocks, and flooded grass. Aggressive hitters in stained water.",
	},
	"flounder": {
		BestBaits:       []string{"Live finger mullet", "Mud minnows", "Gulp shrimp", "Slow jigs"},
		BestTide:        "Falling tide or low slack, ambush points",
		BestZones:       []string{"Zone 3", "Zone 4", "Zone 5"},
		BehaviorSummary: "Flounder are ambush predators that lay on the bottom. Slow presentations work best. Target edges, drop-offs, and dock shadows. Most active when tide is falling.",
	},
	"sheepshead": {
		BestBaits:       []string{"Fiddler crabs", "Live shrimp", "Barnacles", "Sand fleas"},
		BestTide:        "Any tide - less tide-dependent, structure-focused",
		BestZones:       []string{"Zone 3"},
		BehaviorSummary: "Sheepshead stay tight to structure (pilings, rocks). They pick at baits delicately - use light line and small hooks. Active year-round but peak in winter.",
	},
	"black_drum": {
		BestBaits:       []string{"Blue crab (peeled)", "Cut shrimp", "Clams", "Heavy bottom rigs"},
		BestTide:        "Slack tide, either high or low",
		BestZones:       []string{"Zone 4", "Zone 5"},
		BehaviorSummary: "Black drum are bottom feeders that cruise slowly. Less affected by tides and conditions. Target deeper soft bottoms. Patient fishing pays off.",
	},
	"white_trout": {
		BestBaits:       []string{"Small jigs", "Shrimp (live or cut)", "Soft plastics", "Spoons"},
		BestTide:        "Moving tide, especially outgoing",
		BestZones:       []string{"Zone 4", "Zone 5"},
		BehaviorSummary: "White trout school in deeper water off the dock. Fast strikers - work lures quickly. Most active during strong tidal movement and low light.",
	},
	"croaker": {
		BestBaits:       []string{"Shrimp (fresh or frozen)", "Bloodworms", "Small cut bait", "Bottom rigs"},
		BestTide:        "Any tide - steady feeders",
		BestZones:       []string{"Zone 3", "Zone 4", "Zone 5"},
		BehaviorSummary: "Croaker are reliable bottom feeders. They're less sensitive to conditions. Target sandy/muddy bottoms. Great for beginners - easy to catch.",
	},
	"jack_crevalle": {
		BestBaits:       []string{"Live bait fish", "Fast-moving lures", "Spoons", "Topwater plugs"},
		BestTide:        "Moving tide with baitfish activity",
		BestZones:       []string{"Zone 3", "Zone 4", "Zone 5"},
		BehaviorSummary: "Jacks are aggressive predators that chase bait. They appear when baitfish stack up. Fast, powerful fighters. Work lures quickly across the water column.",
	},
	"mullet": {
		BestBaits:       []string{"Cast net (no bait needed)", "Small bread balls", "Dough balls"},
		BestTide:        "Any tide - schools move with bait",
		BestZones:       []string{"Zone 1", "Zone 2"},
		BehaviorSummary: "Mullet school in shallow water. They're filter feeders, not predators. Cast net is the primary method. Great for bait. Watch for visual schools.",
	},
	"blue_crab": {
		BestBaits:       []string{"Chicken necks", "Fish heads", "Cast net", "Crab traps"},
		BestTide:        "Rising tide - crabs become more active",
		BestZones:       []string{"Zone 2", "Zone 3", "Zone 4"},
		BehaviorSummary: "Blue crabs are most active during incoming tides. Use traps or hand lines with bait. Check regulations for size and egg-bearing females.",
	},
}

var defaultBehavior = SpeciesBehavior{
	BestBaits:       []string{"Live shrimp", "Cut bait", "Artificial lures"},
	BestTide:        "Moving tide",
	BestZones:       []string{"Zone 3", "Zone 4"},
	BehaviorSummary: "General behavior data not available for this species.",
}

// SpeciesCheatsheet returns the behavior summary for speciesKey, falling
// back to a generic entry for any species without a dedicated one.
func SpeciesCheatsheet(speciesKey string) SpeciesBehavior {
	if b, ok := speciesBehaviors[speciesKey]; ok {
		return b
	}
	return defaultBehavior
}
