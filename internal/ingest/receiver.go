// Package ingest receives new call records from the scoring pipeline.
// Records are append-only: there is no update or delete endpoint.
package ingest

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/martinsvarc/teamtables/internal/metrics"
	"github.com/martinsvarc/teamtables/internal/storage"
	"github.com/martinsvarc/teamtables/internal/types"
	"github.com/martinsvarc/teamtables/internal/websocket"
	"github.com/rs/zerolog"
)

// Receiver handles incoming call records
type Receiver struct {
	store           storage.Store
	hub             *websocket.Hub
	logger          zerolog.Logger
	recordsReceived int64
	lastReceived    time.Time
	mu              sync.RWMutex
}

// NewReceiver creates a new call-record receiver
func NewReceiver(store storage.Store, hub *websocket.Hub, logger zerolog.Logger) *Receiver {
	return &Receiver{
		store:  store,
		hub:    hub,
		logger: logger.With().Str("component", "ingest").Logger(),
	}
}

// HandleCallRecord receives and persists one call record.
// POST /internal/call-records
func (r *Receiver) HandleCallRecord(w http.ResponseWriter, req *http.Request) {
	m := metrics.Get()

	var record types.CallRecord
	if err := json.NewDecoder(req.Body).Decode(&record); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode call record")
		m.RecordRejected()
		http.Error(w, "invalid call record", http.StatusBadRequest)
		return
	}

	if record.UserID == "" || record.TeamID == "" {
		m.RecordRejected()
		http.Error(w, "userId and teamId are required", http.StatusBadRequest)
		return
	}
	if record.CallTimestamp == "" {
		m.RecordRejected()
		http.Error(w, "callTimestamp is required", http.StatusBadRequest)
		return
	}

	// Ids are assigned here and never reused
	if record.CallID == "" {
		record.CallID = uuid.New().String()
	}

	if err := r.store.SaveCallRecord(req.Context(), record); err != nil {
		r.logger.Error().Err(err).Str("call_id", record.CallID).Msg("failed to save call record")
		http.Error(w, "failed to save call record", http.StatusInternalServerError)
		return
	}

	m.RecordIngested()

	if r.hub != nil {
		r.hub.NotifyTeam(record.TeamID, record.UserID)
	}

	atomic.AddInt64(&r.recordsReceived, 1)
	r.mu.Lock()
	r.lastReceived = time.Now()
	r.mu.Unlock()

	r.logger.Debug().
		Str("call_id", record.CallID).
		Str("team_id", record.TeamID).
		Str("user_id", record.UserID).
		Msg("call record ingested")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"callId": record.CallID})
}

// GetStats returns receiver statistics.
// GET /internal/call-records/stats
func (r *Receiver) GetStats(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	lastReceived := r.lastReceived
	r.mu.RUnlock()

	stats := map[string]interface{}{
		"records_received": atomic.LoadInt64(&r.recordsReceived),
		"last_received":    lastReceived,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
