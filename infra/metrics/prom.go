package metrics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/kilianp07/solarsim/core/metrics"
)

// PromSink records simulator events in Prometheus metrics.
type PromSink struct {
	simulations *prometheus.CounterVec
	simDuration *prometheus.HistogramVec
	lastOutput  *prometheus.GaugeVec
	rosterLoads prometheus.Counter
	rosterSize  prometheus.Gauge
	requests    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
	gatherer    prometheus.Gatherer

	// ListenAddress, when set, serves /metrics on a dedicated listener.
	ListenAddress string
}

// NewPromSink registers the simulator metrics on the default Prometheus registry.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registry; a nil
// gatherer falls back to the registerer when it can gather.
func NewPromSinkWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
		g = prometheus.DefaultGatherer
	}
	if g == nil {
		if gg, ok := reg.(prometheus.Gatherer); ok {
			g = gg
		} else {
			g = prometheus.DefaultGatherer
		}
	}
	s := &PromSink{gatherer: g}
	var err error
	if s.simulations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solarsim_simulations_total",
		Help: "Total number of network projections",
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	if s.simDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solarsim_simulation_duration_seconds",
		Help:    "Time spent computing a projection",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	if s.lastOutput, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "solarsim_last_output_kwh",
		Help: "Total output of the latest projection",
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	if s.rosterLoads, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solarsim_roster_loads_total",
		Help: "Number of roster replacements",
	})); err != nil {
		return nil, err
	}
	if s.rosterSize, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solarsim_roster_plants",
		Help: "Number of plants in the active roster",
	})); err != nil {
		return nil, err
	}
	if s.requests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solarsim_http_requests_total",
		Help: "HTTP requests served by route and status code",
	}, []string{"route", "code"})); err != nil {
		return nil, err
	}
	if s.reqDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solarsim_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})); err != nil {
		return nil, err
	}
	return s, nil
}

// register adds c to reg, reusing the existing collector when an identical
// one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// RecordSimulation counts the projection and observes its duration.
func (s *PromSink) RecordSimulation(ev coremetrics.SimulationEvent) error {
	s.simulations.WithLabelValues(ev.Kind).Inc()
	s.simDuration.WithLabelValues(ev.Kind).Observe(ev.Duration.Seconds())
	s.lastOutput.WithLabelValues(ev.Kind).Set(ev.OutputKWh.InexactFloat64())
	return nil
}

// RecordRosterLoad counts the load and sets the roster size gauge.
func (s *PromSink) RecordRosterLoad(ev coremetrics.RosterLoadEvent) error {
	s.rosterLoads.Inc()
	s.rosterSize.Set(float64(ev.Plants))
	return nil
}

// RecordRequest counts the request by route and status code.
func (s *PromSink) RecordRequest(ev coremetrics.RequestEvent) error {
	s.requests.WithLabelValues(ev.Route, strconv.Itoa(ev.Code)).Inc()
	s.reqDuration.WithLabelValues(ev.Route).Observe(ev.Duration.Seconds())
	return nil
}

// Handler exposes the metrics gathered by the sink's registry.
func (s *PromSink) Handler() http.Handler {
	return promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
}

// FindPromSink returns the PromSink contained in sink, looking inside
// MultiSinks.
func FindPromSink(sink coremetrics.MetricsSink) (*PromSink, bool) {
	switch s := sink.(type) {
	case *PromSink:
		return s, true
	case *coremetrics.MultiSink:
		for _, inner := range s.Sinks {
			if p, ok := FindPromSink(inner); ok {
				return p, true
			}
		}
	}
	return nil, false
}
