package rules

// EnvWeights weighs the six [0,1] sub-scores (internal/subscore) into the
// Forecast Window Builder's combined environmental score (spec §4.4):
// env_score = weighted mean of tide/wind/temp/pressure/moon/cloud.
type EnvWeights struct {
	Tide     float64
	Wind     float64
	Temp     float64
	Pressure float64
	Moon     float64
	Cloud    float64
}

// speciesEnvWeights is the per-species sub-score weight table, carried
// verbatim from the original source's SPECIES_ENV_WEIGHTS. Species not
// listed here fall back to the spec's default of 0.5 for every factor.
var speciesEnvWeights = map[string]EnvWeights{
	"speckled_trout": {Tide: 1.0, Wind: 1.0, Temp: 1.0, Pressure: 1.0, Moon: 0.9, Cloud: 0.9},
	"redfish":        {Tide: 0.8, Wind: 0.6, Temp: 0.7, Pressure: 0.7, Moon: 0.7, Cloud: 0.7},
	"flounder":       {Tide: 0.9, Wind: 0.8, Temp: 0.8, Pressure: 0.8, Moon: 0.7, Cloud: 0.7},
	"sheepshead":     {Tide: 0.7, Wind: 0.4, Temp: 0.6, Pressure: 0.5, Moon: 0.4, Cloud: 0.3},
	"black_drum":     {Tide: 0.2, Wind: 0.2, Temp: 0.4, Pressure: 0.3, Moon: 0.3, Cloud: 0.2},
	"white_trout":    {Tide: 0.7, Wind: 0.8, Temp: 0.9, Pressure: 0.8, Moon: 0.8, Cloud: 0.6},
	"croaker":        {Tide: 0.6, Wind: 0.6, Temp: 0.7, Pressure: 0.6, Moon: 0.5, Cloud: 0.4},
	"tripletail":     {Tide: 0.2, Wind: 0.1, Temp: 0.7, Pressure: 0.5, Moon: 0.3, Cloud: 0.5},
	"blue_crab":      {Tide: 1.0, Wind: 0.4, Temp: 0.8, Pressure: 0.4, Moon: 0.4, Cloud: 0.2},
	"mullet":         {Tide: 0.4, Wind: 0.6, Temp: 0.5, Pressure: 0.4, Moon: 0.3, Cloud: 0.3},
	"jack_crevalle":  {Tide: 0.8, Wind: 0.9, Temp: 0.6, Pressure: 0.7, Moon: 0.6, Cloud: 0.6},
	"mackerel":       {Tide: 0.9, Wind: 1.0, Temp: 0.7, Pressure: 0.7, Moon: 0.7, Cloud: 0.6},
	"shark":          {Tide: 0.7, Wind: 0.6, Temp: 0.5, Pressure: 0.5, Moon: 0.4, Cloud: 0.3},
	"stingray":       {Tide: 0.1, Wind: 0.1, Temp: 0.2, Pressure: 0.2, Moon: 0.2, Cloud: 0.1},
}

var defaultEnvWeights = EnvWeights{Tide: 0.5, Wind: 0.5, Temp: 0.5, Pressure: 0.5, Moon: 0.5, Cloud: 0.5}

// SpeciesEnvWeights looks up a species' sub-score weights, defaulting to
// 0.5 for every factor when the species isn't in the table.
func SpeciesEnvWeights(species string) EnvWeights {
	if w, ok := speciesEnvWeights[species]; ok {
		return w
	}
	return defaultEnvWeights
}
