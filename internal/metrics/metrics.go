// Package metrics keeps counters for the optional monitoring endpoint.
package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	CandidatesCollected int64
	DuplicatesFiltered  int64
	WebPFiltered        int64
	ArticlesSelected    int64
	WebhookMessagesSent int64

	// Timings
	LastProcessingTime time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddCandidates(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesCollected += n
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementWebPFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WebPFiltered++
}

func (m *Metrics) AddSelected(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesSelected += n
}

func (m *Metrics) IncrementWebhookMessagesSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WebhookMessagesSent++
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastProcessingTime = duration
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"candidates_collected":    m.CandidatesCollected,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"webp_filtered":           m.WebPFiltered,
		"articles_selected":       m.ArticlesSelected,
		"webhook_messages_sent":   m.WebhookMessagesSent,
		"last_processing_time_ms": m.LastProcessingTime.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
