package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/tcm/internal/models"
)

// Metrics tracks server statistics using atomic operations for thread-safety
type Metrics struct {
	Requests        atomic.Int64
	ServerErrors    atomic.Int64
	InFlight        atomic.Int32
	ActionsTaken    atomic.Int64
	ActionConflicts atomic.Int64
	ActionErrors    atomic.Int64
	StartTime       time.Time

	// sessions reports the live session count, if set
	sessions func() int
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// ObserveAction counts the outcome of one action function
func (m *Metrics) ObserveAction(_ string, err error) {
	switch {
	case err == nil:
		m.ActionsTaken.Add(1)
	case errors.Is(err, models.ErrConflict):
		m.ActionConflicts.Add(1)
	default:
		m.ActionErrors.Add(1)
	}
}

// observeResponse counts a finished request by status
func (m *Metrics) observeResponse(status int) {
	m.Requests.Add(1)
	if status >= http.StatusInternalServerError {
		m.ServerErrors.Add(1)
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Requests        int64     `json:"requests"`
	ServerErrors    int64     `json:"server_errors"`
	InFlight        int32     `json:"in_flight"`
	ActionsTaken    int64     `json:"actions_taken"`
	ActionConflicts int64     `json:"action_conflicts"`
	ActionErrors    int64     `json:"action_errors"`
	Sessions        int       `json:"sessions"`
	StartTime       time.Time `json:"start_time"`
	Uptime          string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Requests:        m.Requests.Load(),
		ServerErrors:    m.ServerErrors.Load(),
		InFlight:        m.InFlight.Load(),
		ActionsTaken:    m.ActionsTaken.Load(),
		ActionConflicts: m.ActionConflicts.Load(),
		ActionErrors:    m.ActionErrors.Load(),
		StartTime:       m.StartTime,
		Uptime:          time.Since(m.StartTime).Round(time.Second).String(),
	}
	if m.sessions != nil {
		snap.Sessions = m.sessions()
	}
	return snap
}

// ServeHTTP writes the snapshot as JSON
func (m *Metrics) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m.GetSnapshot())
}
