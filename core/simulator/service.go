// Package simulator orchestrates the power plant network: it validates and
// stores rosters and projects their output with a solar.Calculator.
package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kilianp07/solarsim/core/events"
	"github.com/kilianp07/solarsim/core/logger"
	"github.com/kilianp07/solarsim/core/model"
	"github.com/kilianp07/solarsim/core/roster"
	"github.com/kilianp07/solarsim/core/solar"
	"github.com/kilianp07/solarsim/internal/eventbus"
)

// Service implements the network operations.
type Service struct {
	store roster.Store
	calc  *solar.Calculator
	bus   eventbus.EventBus
	log   logger.Logger
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEventBus publishes events on bus.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(s *Service) {
		if bus != nil {
			s.bus = bus
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a Service on top of store and calc.
func New(store roster.Store, calc *solar.Calculator, opts ...Option) *Service {
	s := &Service{
		store: store,
		calc:  calc,
		bus:   eventbus.Nop{},
		log:   logger.NopLogger{},
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load validates plants and replaces the active roster with them. Nothing is
// stored when validation fails.
func (s *Service) Load(ctx context.Context, plants []model.PowerPlant) error {
	if err := ValidateNetwork(plants); err != nil {
		return err
	}
	if err := s.store.Replace(ctx, plants); err != nil {
		return fmt.Errorf("replace roster: %w", err)
	}
	id := uuid.NewString()
	s.log.Infof("roster %s loaded with %d plants", id, len(plants))
	s.bus.Publish(events.RosterLoaded{LoadID: id, Plants: len(plants), Time: s.now()})
	return nil
}

// NetworkState projects every active plant t days ahead, in roster order.
func (s *Service) NetworkState(ctx context.Context, t int) ([]model.PowerPlantOutput, error) {
	if err := ValidateT(t); err != nil {
		return nil, err
	}
	start := s.now()
	plants, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	res := make([]model.PowerPlantOutput, len(plants))
	total := decimal.Zero
	for i, p := range plants {
		out := s.calc.PowerOutput(p.Age, t)
		res[i] = model.PowerPlantOutput{Name: p.Name, AgeAfterT: ageAfter(p.Age, t), OutputKWh: out}
		total = total.Add(out)
	}
	s.publish(events.KindNetworkState, t, len(plants), total, start)
	return res, nil
}

// NetworkOutput returns the total output of the active roster over t days.
func (s *Service) NetworkOutput(ctx context.Context, t int) (model.NetworkOutput, error) {
	if err := ValidateT(t); err != nil {
		return model.NetworkOutput{}, err
	}
	start := s.now()
	plants, err := s.store.List(ctx)
	if err != nil {
		return model.NetworkOutput{}, fmt.Errorf("list roster: %w", err)
	}
	total := s.sum(plants, t)
	s.publish(events.KindNetworkOutput, t, len(plants), total, start)
	return model.NetworkOutput{TotalOutputKWh: total}, nil
}

// UploadAndSimulate parses an uploaded roster and projects it t days ahead
// without touching the active roster.
func (s *Service) UploadAndSimulate(ctx context.Context, t int, r io.Reader) (model.SimulationResult, error) {
	plants, err := ParsePlants(r)
	if err != nil {
		return model.SimulationResult{}, err
	}
	return s.Simulate(ctx, t, plants)
}

// Simulate projects an arbitrary roster t days ahead without storing it.
func (s *Service) Simulate(_ context.Context, t int, plants []model.PowerPlant) (model.SimulationResult, error) {
	if err := ValidateT(t); err != nil {
		return model.SimulationResult{}, err
	}
	if err := ValidateNetwork(plants); err != nil {
		return model.SimulationResult{}, err
	}
	start := s.now()
	network := make([]model.PowerPlant, len(plants))
	for i, p := range plants {
		network[i] = model.PowerPlant{Name: p.Name, Age: ageAfter(p.Age, t)}
	}
	total := s.sum(plants, t)
	s.publish(events.KindUpload, t, len(plants), total, start)
	return model.SimulationResult{ProducedKWh: total, Network: network}, nil
}

func (s *Service) sum(plants []model.PowerPlant, t int) decimal.Decimal {
	total := decimal.Zero
	for _, p := range plants {
		total = total.Add(s.calc.PowerOutput(p.Age, t))
	}
	return total
}

func (s *Service) publish(kind events.SimulationKind, t, plants int, total decimal.Decimal, start time.Time) {
	now := s.now()
	s.log.Debugw("network simulated", map[string]any{
		"kind":   string(kind),
		"days":   t,
		"plants": plants,
		"kwh":    total.String(),
	})
	s.bus.Publish(events.NetworkSimulated{
		Kind:      kind,
		Days:      t,
		Plants:    plants,
		OutputKWh: total,
		Duration:  now.Sub(start),
		Time:      now,
	})
}

// ageAfter cannot overflow once ValidateT and ValidateNetwork have passed.
func ageAfter(age, t int) int { return age + t - 1 }
