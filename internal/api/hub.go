package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// scoreUpdate is the payload relayed to every connected /ws/scores client
// whenever a bite score is recomputed.
type scoreUpdate struct {
	Species string    `json:"species"`
	ZoneID  string     `json:"zone_id"`
	At      time.Time `json:"at"`
}

// scoreHub fans out score-updated events to every connected websocket
// client. One Broadcast call writes to every client with a short per-write
// deadline; a slow or dead client is dropped rather than blocking the rest.
type scoreHub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newScoreHub(logger *slog.Logger) *scoreHub {
	return &scoreHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

func (h *scoreHub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Drain and discard inbound frames; this relay is write-only. The read
	// loop exists solely to notice client disconnects.
	go func() {
		defer h.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *scoreHub) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast relays a score update to every connected client. Meant to be
// called from the MQTT score-updated subscription handler in cmd/bayscan-api.
func (h *scoreHub) Broadcast(species, zoneID string) {
	payload, err := json.Marshal(scoreUpdate{Species: species, ZoneID: zoneID, At: time.Now().UTC()})
	if err != nil {
		h.logger.Error("failed to marshal score update", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Debug("dropping unresponsive websocket client", "error", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
