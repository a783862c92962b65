package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/martinsvarc/teamtables/internal/metrics"
	"github.com/rs/zerolog"
)

// RefreshNotice tells connected dashboards that a team's call records
// changed and its summary should be re-queried. Summaries themselves are
// never pushed; the dashboard recomputes through the aggregation facade.
type RefreshNotice struct {
	Type      string    `json:"type"`
	TeamID    string    `json:"teamId"`
	UserID    string    `json:"userId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts refresh notices
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Outbound notices
	broadcast chan []byte

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex to protect clients map
	mu sync.RWMutex

	// Logger
	logger zerolog.Logger
}

// NewHub creates a new Hub
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWebSocketConnect()
			h.logger.Info().
				Str("client_id", client.id).
				Int("total_clients", len(h.clients)).
				Msg("client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWebSocketDisconnect()
				h.logger.Info().
					Str("client_id", client.id).
					Int("total_clients", len(h.clients)).
					Msg("client disconnected")
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			// Parse as a RefreshNotice for per-client team filtering
			var notice RefreshNotice
			if err := json.Unmarshal(message, &notice); err != nil || notice.TeamID == "" {
				// Not a notice, broadcast as-is to all clients
				h.broadcastRaw(message)
				continue
			}
			h.broadcastFiltered(&notice, message)
		}
	}
}

// NotifyTeam queues a refresh notice for a team's dashboards
func (h *Hub) NotifyTeam(teamID, userID string) {
	notice := RefreshNotice{
		Type:      "summary_refresh",
		TeamID:    teamID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(notice)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal refresh notice")
		return
	}
	h.broadcast <- data
	metrics.Get().RecordWebSocketNotice()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcastRaw sends a raw message to all clients without filtering
func (h *Hub) broadcastRaw(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Client's send buffer is full, close and remove it
			close(client.send)
			delete(h.clients, client)
			h.logger.Warn().
				Str("client_id", client.id).
				Msg("client send buffer full, closing connection")
		}
	}
}

// broadcastFiltered sends a notice only to clients allowed to see the team
func (h *Hub) broadcastFiltered(notice *RefreshNotice, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if !client.CanSeeTeam(notice.TeamID) {
			continue
		}

		select {
		case client.send <- message:
		default:
			close(client.send)
			delete(h.clients, client)
			h.logger.Warn().
				Str("client_id", client.id).
				Msg("client send buffer full, closing connection")
		}
	}
}
