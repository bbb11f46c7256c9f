package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// SimulationEvent describes one completed projection.
type SimulationEvent struct {
	Kind      string
	Days      int
	Plants    int
	OutputKWh decimal.Decimal
	Duration  time.Duration
	Time      time.Time
}

// MetricsSink records simulations for observability purposes.
type MetricsSink interface {
	RecordSimulation(ev SimulationEvent) error
}

// RosterLoadEvent captures a roster replacement.
type RosterLoadEvent struct {
	LoadID string
	Plants int
	Time   time.Time
}

// RosterRecorder records roster replacements.
type RosterRecorder interface {
	RecordRosterLoad(ev RosterLoadEvent) error
}

// RequestEvent describes one served HTTP request.
type RequestEvent struct {
	Route    string
	Code     int
	Duration time.Duration
}

// RequestRecorder records HTTP request outcomes.
type RequestRecorder interface {
	RecordRequest(ev RequestEvent) error
}

// Closer is implemented by sinks holding connections.
type Closer interface {
	Close() error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordSimulation(SimulationEvent) error { return nil }
func (NopSink) RecordRosterLoad(RosterLoadEvent) error { return nil }
func (NopSink) RecordRequest(RequestEvent) error       { return nil }
