package api

import (
	"net/http"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/advanced"
	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// speciesCurrent is one species' row in GET /current's species list.
type speciesCurrent struct {
	Species    string  `json:"species"`
	Name       string  `json:"species_name"`
	BiteScore  float64 `json:"bite_score"`
	Tier       string  `json:"tier"`
	IsRunning  bool    `json:"is_running"`
	DepthMinFt int     `json:"depth_min_ft"`
	DepthMaxFt int     `json:"depth_max_ft"`
	DepthNote  string  `json:"depth_note"`
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()

	windows, err := s.store.ForecastWindowsFrom(ctx, now, 1)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(windows) == 0 {
		writeError(w, http.StatusServiceUnavailable, "no forecast window available yet")
		return
	}
	window := windows[0]

	forecasts, err := s.store.SpeciesForecastsForWindow(ctx, window.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	snap, err := s.store.LatestSnapshot(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "no environment snapshot available yet")
		return
	}

	zones, err := s.store.Zones(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	zoneByID := make(map[string]store.Zone, len(zones))
	for _, z := range zones {
		zoneByID[z.ZoneID] = z
	}

	strongPenalty := advanced.HasStrongNorthWindPenalty(snap.WindDirection, snap.WindSpeedMph, &snap.AirTempF, snap.WaterTempF)
	moderatePenalty := advanced.HasModerateNorthWindPenalty(snap.WindDirection)

	speciesRows := make([]speciesCurrent, 0, len(forecasts))
	var overallScore float64
	var topSpecies []speciesCurrent
	for _, f := range forecasts {
		zoneMin, zoneMax := 1, 7
		if z, ok := zoneByID[bestZoneForSpecies(f.Species)]; ok {
			zoneMin, zoneMax = z.DepthBandMinFt, z.DepthBandMaxFt
		}
		shift := advanced.DepthShiftFt(f.Species, snap.WindDirection, snap.WindSpeedMph, &snap.AirTempF, snap.WaterTempF)
		depthMin, depthMax := advanced.ApplyDepthShift(zoneMin, zoneMax, shift)
		note := ""
		if shift > 0 {
			note = advanced.DepthNote(f.Species, "", strongPenalty)
		}

		row := speciesCurrent{
			Species:    f.Species,
			Name:       rules.DisplayName(f.Species),
			BiteScore:  f.BiteScore,
			Tier:       f.BiteLabel,
			IsRunning:  f.IsRunning,
			DepthMinFt: depthMin,
			DepthMaxFt: depthMax,
			DepthNote:  note,
		}
		speciesRows = append(speciesRows, row)
		if f.BiteScore > overallScore {
			overallScore = f.BiteScore
		}
	}

	for i := 0; i < len(speciesRows) && len(topSpecies) < 2; i++ {
		best := -1
		for j, row := range speciesRows {
			if contains(topSpecies, row.Species) {
				continue
			}
			if best == -1 || row.BiteScore > speciesRows[best].BiteScore {
				best = j
			}
		}
		if best == -1 {
			break
		}
		topSpecies = append(topSpecies, speciesRows[best])
	}

	advancedTop := make([]advanced.TopSpecies, 0, len(topSpecies))
	for _, t := range topSpecies {
		advancedTop = append(advancedTop, advanced.TopSpecies{Species: t.Species, Tier: t.Tier})
	}

	clarity := snap.Clarity
	if clarity == "" {
		clarity = advanced.PredictWaterClarity(snap.WindSpeedMph, snap.TideChangeRate, false)
	}

	topSpeciesKey := ""
	if len(topSpecies) > 0 {
		topSpeciesKey = topSpecies[0].Species
	}
	depthMin, depthMax := 1, 7
	if len(topSpecies) > 0 {
		depthMin, depthMax = topSpecies[0].DepthMinFt, topSpecies[0].DepthMaxFt
	}

	resp := map[string]interface{}{
		"window_start":       window.Start,
		"window_end":         window.End,
		"overall_score":      overallScore,
		"overall_tier":       rules.BiteLabel(overallScore),
		"tide_state":         snap.TideStage,
		"tide_height_ft":     snap.TideHeightFt,
		"air_temp_f":         snap.AirTempF,
		"water_temp_f":       snap.WaterTempF,
		"wind_speed_mph":     snap.WindSpeedMph,
		"wind_direction":     snap.WindDirection,
		"wind_gust_mph":      snap.WindGustMph,
		"moon_phase":         snap.MoonPhaseName,
		"conditions_summary": snap.CloudCover,
		"cold_north_wind_penalty": map[string]bool{
			"strong":   strongPenalty,
			"moderate": moderatePenalty,
		},
		"top_species":       topSpecies,
		"species":           speciesRows,
		"clarity":           clarity,
		"clarity_tip":       advanced.ClarityTip(clarity),
		"confidence":        advanced.ConfidenceScore(0.6, 0.6, 0.6),
		"rig_of_moment":     advanced.RigOfMoment(clarity, snap.WindSpeedMph, snap.TideChangeRate, topSpeciesKey, depthMin, depthMax),
		"best_zones":        advanced.BestZonesNow(advancedTop, snap.TideStage, clarity, snap.TimeOfDay, snap.WindDirection, snap.WindSpeedMph, &snap.AirTempF, snap.WaterTempF),
		"pro_tip":           advanced.ProTip(rules.BiteLabel(overallScore), clarity, snap.TideStage, snap.WindSpeedMph, snap.TimeOfDay),
		"current_strength":  advanced.CurrentStrength(snap.TideChangeRate),
		"moon_tide_window":  advanced.MoonTideWindow(snap.MoonPhaseName, snap.TideStage, snap.TimeOfDay),
	}
	writeJSON(w, http.StatusOK, resp)
}

func contains(rows []speciesCurrent, species string) bool {
	for _, r := range rows {
		if r.Species == species {
			return true
		}
	}
	return false
}

// bestZoneForSpecies picks a representative zone for a species' depth band
// lookup from a fixed choice: Zone 4 for flounder and black drum, Zone 3
// for sheepshead and for every other species.
func bestZoneForSpecies(species string) string {
	switch species {
	case "sheepshead":
		return "Zone 3"
	case "flounder", "black_drum":
		return "Zone 4"
	default:
		return "Zone 3"
	}
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	hours := parseHours(r, 24)
	count := hours / 2
	if count < 1 {
		count = 1
	}

	windows, err := s.store.ForecastWindowsFrom(r.Context(), time.Now().UTC(), count)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type windowResp struct {
		Start     time.Time               `json:"start"`
		End       time.Time               `json:"end"`
		Forecasts []store.SpeciesForecast `json:"forecasts"`
	}
	resp := make([]windowResp, 0, len(windows))
	for _, win := range windows {
		forecasts, err := s.store.SpeciesForecastsForWindow(r.Context(), win.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp = append(resp, windowResp{Start: win.Start, End: win.End, Forecasts: forecasts})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHourlyOutlook(w http.ResponseWriter, r *http.Request) {
	hours := parseHours(r, 12)
	count := hours/2 + 1
	windows, err := s.store.ForecastWindowsFrom(r.Context(), time.Now().UTC(), count)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type hourRow struct {
		Start     time.Time `json:"start"`
		End       time.Time `json:"end"`
		BestScore float64   `json:"best_score"`
		BestTier  string    `json:"best_tier"`
	}
	rows := make([]hourRow, 0, len(windows))
	for _, win := range windows {
		forecasts, err := s.store.SpeciesForecastsForWindow(r.Context(), win.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		best := 0.0
		for _, f := range forecasts {
			if f.BiteScore > best {
				best = f.BiteScore
			}
		}
		rows = append(rows, hourRow{Start: win.Start, End: win.End, BestScore: best, BestTier: rules.BiteLabel(best)})
	}
	writeJSON(w, http.StatusOK, rows)
}

func speciesResponse(key string) map[string]interface{} {
	behavior := advanced.SpeciesCheatsheet(key)
	return map[string]interface{}{
		"species":          key,
		"species_name":     rules.DisplayName(key),
		"best_baits":       behavior.BestBaits,
		"best_tide":        behavior.BestTide,
		"best_zones":       behavior.BestZones,
		"behavior_summary": behavior.BehaviorSummary,
	}
}
