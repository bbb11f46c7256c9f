package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// SimulationKind tells which operation produced a NetworkSimulated event.
type SimulationKind string

const (
	KindNetworkState  SimulationKind = "network_state"
	KindNetworkOutput SimulationKind = "network_output"
	KindUpload        SimulationKind = "upload"
)

// NetworkSimulated is published for every successful projection.
type NetworkSimulated struct {
	Kind      SimulationKind
	Days      int
	Plants    int
	OutputKWh decimal.Decimal
	Duration  time.Duration
	Time      time.Time
}
