// Package api exposes the engine's read/write surface over HTTP (spec
// §6): cached score reads, forecast/alert/tide/species lookups, and the
// catch/bait/predator write endpoints, plus a websocket relay that
// streams score-updated events to connected dashboards.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/saaga0h/bayscan-engine/internal/engine"
	"github.com/saaga0h/bayscan-engine/internal/rules"
	"github.com/saaga0h/bayscan-engine/pkg/store"
)

// Server wires the engine and store into an http.Handler.
type Server struct {
	engine *engine.Engine
	store  store.Store
	hub    *scoreHub
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewServer builds a Server and registers every route.
func NewServer(e *engine.Engine, s store.Store, logger *slog.Logger) *Server {
	srv := &Server{engine: e, store: s, hub: newScoreHub(logger), logger: logger, mux: http.NewServeMux()}
	srv.routes()
	return srv
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Hub exposes the websocket score-update hub so main can wire it to the
// MQTT score-updated topic.
func (s *Server) Hub() *scoreHub {
	return s.hub
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /current", s.handleCurrent)
	s.mux.HandleFunc("GET /zone-bite-scores", s.handleZoneBiteScores)
	s.mux.HandleFunc("GET /forecast", s.handleForecast)
	s.mux.HandleFunc("GET /hourly-outlook", s.handleHourlyOutlook)
	s.mux.HandleFunc("GET /alerts", s.handleAlerts)
	s.mux.HandleFunc("GET /tide", s.handleTide)
	s.mux.HandleFunc("GET /species/{key}", s.handleSpecies)
	s.mux.HandleFunc("GET /bait-forecast", s.handleBaitForecast)
	s.mux.HandleFunc("GET /bait/{key}", s.handleBait)

	s.mux.HandleFunc("POST /catches", s.handleCreateCatch)
	s.mux.HandleFunc("DELETE /catches/{id}", s.handleDeleteCatch)
	s.mux.HandleFunc("POST /bait-logs", s.handleCreateBaitLog)
	s.mux.HandleFunc("DELETE /bait-logs/{id}", s.handleDeleteBaitLog)
	s.mux.HandleFunc("POST /predator-logs", s.handleCreatePredatorLog)
	s.mux.HandleFunc("DELETE /predator-logs/{id}", s.handleDeletePredatorLog)

	s.mux.HandleFunc("GET /ws/scores", s.hub.serveWS)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func isValidZone(zoneID string) bool {
	for _, z := range rules.ZoneIDs {
		if z == zoneID {
			return true
		}
	}
	return false
}

func isValidFishSpecies(species string) bool {
	for _, s := range append(append([]string{}, rules.TierOneSpecies...), rules.TierTwoSpecies...) {
		if s == species {
			return true
		}
	}
	return false
}

func isValidBaitSpecies(species string) bool {
	for _, s := range rules.BaitSpecies {
		if s == species {
			return true
		}
	}
	return false
}

func parseHours(r *http.Request, defaultHours int) int {
	raw := r.URL.Query().Get("hours")
	if raw == "" {
		return defaultHours
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultHours
	}
	return n
}

func (s *Server) handleZoneBiteScores(w http.ResponseWriter, r *http.Request) {
	species := r.URL.Query().Get("species")
	zoneID := r.URL.Query().Get("zone_id")
	if !isValidFishSpecies(species) {
		writeError(w, http.StatusBadRequest, "unknown species")
		return
	}
	if !isValidZone(zoneID) {
		writeError(w, http.StatusBadRequest, "unknown zone_id")
		return
	}

	score, err := s.store.GetBiteScore(r.Context(), species, zoneID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if score == nil {
		// Cache miss: trigger a synchronous recompute then re-read.
		if err := s.engine.RecalculateOnDemand(r.Context(), species, zoneID); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		score, err = s.store.GetBiteScore(r.Context(), species, zoneID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if score == nil {
		writeError(w, http.StatusInternalServerError, "bite score unavailable")
		return
	}

	tip, _ := s.store.GetTip(r.Context(), species, zoneID)
	resp := map[string]interface{}{
		"species":        species,
		"species_name":   rules.DisplayName(species),
		"zone_id":        zoneID,
		"bite_score":     score.Score,
		"rating":         score.Rating,
		"confidence":     score.Confidence,
		"reason_summary": score.ReasonSummary,
		"last_updated":   score.LastUpdated,
		"data_source":    "cached",
	}
	if tip != nil {
		resp["tip"] = tip.TipText
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.store.ActiveAlerts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleTide(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	samples, err := s.store.TideSamplesAround(r.Context(), now, 12*time.Hour)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if !isValidFishSpecies(key) && !isValidBaitSpecies(key) {
		writeError(w, http.StatusNotFound, "unknown species")
		return
	}
	writeJSON(w, http.StatusOK, speciesResponse(key))
}

func (s *Server) handleBaitForecast(w http.ResponseWriter, r *http.Request) {
	type row struct {
		BaitSpecies string  `json:"bait_species"`
		ZoneID      string  `json:"zone_id"`
		Score       float64 `json:"score"`
		Rating      string  `json:"rating"`
	}
	var rows []row
	for _, bait := range rules.BaitSpecies {
		for _, zoneID := range rules.ZoneIDs {
			bs, err := s.store.GetBaitScore(r.Context(), bait, zoneID)
			if err != nil || bs == nil {
				continue
			}
			rows = append(rows, row{BaitSpecies: bait, ZoneID: zoneID, Score: bs.Score, Rating: bs.Rating})
		}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleBait(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if !isValidBaitSpecies(key) {
		writeError(w, http.StatusNotFound, "unknown bait species")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bait_species": key,
		"targets":      rules.BaitTargets[key],
	})
}

func (s *Server) handleCreateCatch(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Species              string   `json:"species"`
		ZoneID                string   `json:"zone_id"`
		Quantity              int      `json:"quantity"`
		Kept                  bool     `json:"kept"`
		RigType               string   `json:"rig_type"`
		BaitUsed              string   `json:"bait_used"`
		SizeInches            *float64 `json:"size_inches"`
		PredatorSeenRecently  bool     `json:"predator_seen_recently"`
		DaysSinceLastChecked  *int     `json:"days_since_last_checked"`
		Notes                 string   `json:"notes"`
		Timestamp             *time.Time `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !isValidFishSpecies(in.Species) && in.Species != "blue_crab" {
		writeError(w, http.StatusBadRequest, "unknown species")
		return
	}
	if !isValidZone(in.ZoneID) {
		writeError(w, http.StatusBadRequest, "unknown zone_id")
		return
	}
	if in.Quantity <= 0 {
		in.Quantity = 1
	}
	ts := time.Now().UTC()
	if in.Timestamp != nil {
		ts = in.Timestamp.UTC()
	}

	created, err := s.engine.RecordCatch(r.Context(), store.Catch{
		Timestamp:            ts,
		Species:              in.Species,
		ZoneID:               in.ZoneID,
		Quantity:             in.Quantity,
		Kept:                 in.Kept,
		RigType:              in.RigType,
		BaitUsed:             in.BaitUsed,
		SizeInches:           in.SizeInches,
		PredatorSeenRecently: in.PredatorSeenRecently,
		DaysSinceLastChecked: in.DaysSinceLastChecked,
		Notes:                in.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteCatch(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCatch(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateBaitLog(w http.ResponseWriter, r *http.Request) {
	var in struct {
		BaitSpecies      string     `json:"bait_species"`
		ZoneID           string     `json:"zone_id"`
		QuantityEstimate string     `json:"quantity_estimate"`
		Method           string     `json:"method"`
		Timestamp        *time.Time `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !isValidBaitSpecies(in.BaitSpecies) {
		writeError(w, http.StatusBadRequest, "unknown bait species")
		return
	}
	if !isValidZone(in.ZoneID) {
		writeError(w, http.StatusBadRequest, "unknown zone_id")
		return
	}
	ts := time.Now().UTC()
	if in.Timestamp != nil {
		ts = in.Timestamp.UTC()
	}

	created, err := s.engine.RecordBaitLog(r.Context(), store.BaitLog{
		Timestamp:        ts,
		BaitSpecies:      in.BaitSpecies,
		ZoneID:           in.ZoneID,
		QuantityEstimate: in.QuantityEstimate,
		Method:           in.Method,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteBaitLog(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteBaitLog(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreatePredatorLog(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PredatorKind string     `json:"predator_kind"`
		ZoneID       string     `json:"zone_id"`
		Behavior     string     `json:"behavior"`
		TideStage    string     `json:"tide_stage"`
		Timestamp    *time.Time `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.PredatorKind == "" {
		writeError(w, http.StatusBadRequest, "predator_kind is required")
		return
	}
	if !isValidZone(in.ZoneID) {
		writeError(w, http.StatusBadRequest, "unknown zone_id")
		return
	}
	ts := time.Now().UTC()
	if in.Timestamp != nil {
		ts = in.Timestamp.UTC()
	}

	created, err := s.engine.RecordPredatorLog(r.Context(), store.PredatorLog{
		Timestamp:    ts,
		PredatorKind: in.PredatorKind,
		ZoneID:       in.ZoneID,
		Behavior:     in.Behavior,
		TideStage:    in.TideStage,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeletePredatorLog(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePredatorLog(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
