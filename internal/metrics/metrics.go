package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Ingestion metrics
	RecordsIngestedTotal int64
	RecordsRejectedTotal int64

	// Aggregation metrics
	SummariesComputedTotal  int64
	MembersSummarizedTotal  int64
	MalformedRecordsTotal   int64
	AggregationErrorsTotal  int64
	lastAggregationDuration time.Duration

	// WebSocket metrics
	WebSocketConnectionsTotal    int64
	WebSocketDisconnectionsTotal int64
	WebSocketNoticesTotal        int64
	activeConnections            int64

	// HTTP metrics
	httpRequestsTotal    map[string]map[int]int64 // endpoint -> status -> count
	httpRequestDurations map[string][]float64     // endpoint -> durations

	// Timing
	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			httpRequestsTotal:    make(map[string]map[int]int64),
			httpRequestDurations: make(map[string][]float64),
			startTime:            time.Now(),
		}
	})
	return instance
}

// RecordIngested increments the ingested-records counter
func (m *Metrics) RecordIngested() {
	m.mu.Lock()
	m.RecordsIngestedTotal++
	m.mu.Unlock()
}

// RecordRejected increments the rejected-records counter
func (m *Metrics) RecordRejected() {
	m.mu.Lock()
	m.RecordsRejectedTotal++
	m.mu.Unlock()
}

// RecordSummaryComputed records one completed team-summary aggregation
func (m *Metrics) RecordSummaryComputed(duration time.Duration, memberCount int) {
	m.mu.Lock()
	m.SummariesComputedTotal++
	m.MembersSummarizedTotal += int64(memberCount)
	m.lastAggregationDuration = duration
	m.mu.Unlock()
}

// RecordMalformedRecords counts records excluded for data-quality reasons
func (m *Metrics) RecordMalformedRecords(n int) {
	if n == 0 {
		return
	}
	m.mu.Lock()
	m.MalformedRecordsTotal += int64(n)
	m.mu.Unlock()
}

// RecordAggregationError increments the aggregation error counter
func (m *Metrics) RecordAggregationError() {
	m.mu.Lock()
	m.AggregationErrorsTotal++
	m.mu.Unlock()
}

// RecordWebSocketConnect increments connection counters
func (m *Metrics) RecordWebSocketConnect() {
	m.mu.Lock()
	m.WebSocketConnectionsTotal++
	m.activeConnections++
	m.mu.Unlock()
}

// RecordWebSocketDisconnect increments disconnection counter
func (m *Metrics) RecordWebSocketDisconnect() {
	m.mu.Lock()
	m.WebSocketDisconnectionsTotal++
	m.activeConnections--
	m.mu.Unlock()
}

// RecordWebSocketNotice increments the refresh-notice counter
func (m *Metrics) RecordWebSocketNotice() {
	m.mu.Lock()
	m.WebSocketNoticesTotal++
	m.mu.Unlock()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(endpoint string, statusCode int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.httpRequestsTotal[endpoint] == nil {
		m.httpRequestsTotal[endpoint] = make(map[int]int64)
	}
	m.httpRequestsTotal[endpoint][statusCode]++

	// Keep last 100 durations for percentile calculation
	if len(m.httpRequestDurations[endpoint]) >= 100 {
		m.httpRequestDurations[endpoint] = m.httpRequestDurations[endpoint][1:]
	}
	m.httpRequestDurations[endpoint] = append(m.httpRequestDurations[endpoint], duration.Seconds())
}

// GetActiveConnections returns current WebSocket connections
func (m *Metrics) GetActiveConnections() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeConnections
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		// Helper to write metric
		write := func(name string, value interface{}, labels ...string) {
			labelStr := ""
			if len(labels) > 0 {
				labelStr = "{"
				for i := 0; i < len(labels); i += 2 {
					if i > 0 {
						labelStr += ","
					}
					labelStr += labels[i] + "=\"" + labels[i+1] + "\""
				}
				labelStr += "}"
			}

			switch v := value.(type) {
			case int:
				w.Write([]byte(name + labelStr + " " + strconv.Itoa(v) + "\n"))
			case int64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatInt(v, 10) + "\n"))
			case float64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatFloat(v, 'f', 6, 64) + "\n"))
			}
		}

		// System metrics
		write("teamtables_uptime_seconds", time.Since(m.startTime).Seconds())

		// Ingestion metrics
		write("teamtables_records_ingested_total", m.RecordsIngestedTotal)
		write("teamtables_records_rejected_total", m.RecordsRejectedTotal)

		// Aggregation metrics
		write("teamtables_summaries_computed_total", m.SummariesComputedTotal)
		write("teamtables_members_summarized_total", m.MembersSummarizedTotal)
		write("teamtables_malformed_records_total", m.MalformedRecordsTotal)
		write("teamtables_aggregation_errors_total", m.AggregationErrorsTotal)
		write("teamtables_aggregation_duration_seconds", m.lastAggregationDuration.Seconds())

		// WebSocket metrics
		write("teamtables_websocket_connections_total", m.WebSocketConnectionsTotal)
		write("teamtables_websocket_disconnections_total", m.WebSocketDisconnectionsTotal)
		write("teamtables_websocket_active_connections", m.activeConnections)
		write("teamtables_websocket_notices_total", m.WebSocketNoticesTotal)

		// HTTP metrics
		for endpoint, statusCodes := range m.httpRequestsTotal {
			for status, count := range statusCodes {
				write("teamtables_http_requests_total", count, "endpoint", endpoint, "status", strconv.Itoa(status))
			}
		}
	}
}
