package metrics

import (
	"context"

	"github.com/kilianp07/solarsim/core/events"
	coremetrics "github.com/kilianp07/solarsim/core/metrics"
	"github.com/kilianp07/solarsim/infra/logger"
	"github.com/kilianp07/solarsim/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled or the bus is closed. The returned
// channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("metrics-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := record(sink, ev); err != nil {
					log.Warnf("record %T: %v", ev, err)
				}
			}
		}
	}()
	return done
}

func record(sink coremetrics.MetricsSink, ev eventbus.Event) error {
	switch e := ev.(type) {
	case events.NetworkSimulated:
		return sink.RecordSimulation(coremetrics.SimulationEvent{
			Kind:      string(e.Kind),
			Days:      e.Days,
			Plants:    e.Plants,
			OutputKWh: e.OutputKWh,
			Duration:  e.Duration,
			Time:      e.Time,
		})
	case events.RosterLoaded:
		if r, ok := sink.(coremetrics.RosterRecorder); ok {
			return r.RecordRosterLoad(coremetrics.RosterLoadEvent{
				LoadID: e.LoadID,
				Plants: e.Plants,
				Time:   e.Time,
			})
		}
	}
	return nil
}
