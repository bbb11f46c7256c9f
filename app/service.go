// Package app wires configuration, storage, metrics and the HTTP API into a
// runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	solarapi "github.com/kilianp07/solarsim/api/solar"
	"github.com/kilianp07/solarsim/config"
	coremetrics "github.com/kilianp07/solarsim/core/metrics"
	coremon "github.com/kilianp07/solarsim/core/monitoring"
	"github.com/kilianp07/solarsim/core/roster"
	"github.com/kilianp07/solarsim/core/simulator"
	"github.com/kilianp07/solarsim/core/solar"
	"github.com/kilianp07/solarsim/infra/logger"
	"github.com/kilianp07/solarsim/infra/metrics"
	"github.com/kilianp07/solarsim/infra/monitoring"
	"github.com/kilianp07/solarsim/internal/eventbus"

	// persistent roster stores and the mqtt sink register themselves
	_ "github.com/kilianp07/solarsim/infra/mqtt"
	_ "github.com/kilianp07/solarsim/infra/roster"
)

// Service owns every long-lived component of the simulator.
type Service struct {
	Simulator *simulator.Service
	Store     roster.Store
	Sink      coremetrics.MetricsSink
	Monitor   coremon.Monitor

	cfg     *config.Config
	bus     *eventbus.TypedBus[eventbus.Event]
	handler http.Handler
	prom    *metrics.PromSink
	log     logger.Logger
}

// OpenSimulator builds the degradation curve and the configured roster
// store, without metrics or HTTP. The caller closes the returned store.
func OpenSimulator(cfg *config.Config, opts ...simulator.Option) (*simulator.Service, roster.Store, error) {
	store, err := roster.NewStore(cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("roster store: %w", err)
	}
	calc := solar.NewCalculator(solar.NewCurve())
	return simulator.New(store, calc, opts...), store, nil
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, err
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	bus := eventbus.New()
	sim, store, err := OpenSimulator(cfg,
		simulator.WithEventBus(bus),
		simulator.WithLogger(logger.New("simulator")),
	)
	if err != nil {
		closeSink(sink)
		return nil, err
	}

	opts := []solarapi.Option{
		solarapi.WithLogger(logger.New("api")),
		solarapi.WithMonitor(mon),
		solarapi.WithMaxBodyBytes(cfg.HTTP.MaxUploadBytes()),
		solarapi.WithAccessLog(cfg.Logging.AccessLogEnabled()),
	}
	if rec, ok := sink.(coremetrics.RequestRecorder); ok {
		opts = append(opts, solarapi.WithRequestRecorder(rec))
	}
	api := solarapi.NewHandler(sim, opts...)
	mux := http.NewServeMux()
	api.Register(mux)
	prom, promOK := metrics.FindPromSink(sink)
	if promOK && prom.ListenAddress == "" {
		mux.Handle("GET /metrics", prom.Handler())
	}

	s := &Service{
		Simulator: sim,
		Store:     store,
		Sink:      sink,
		Monitor:   mon,
		cfg:       cfg,
		bus:       bus,
		handler:   solarapi.WithRequestID(mux),
		prom:      prom,
		log:       logg,
	}
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Service) Handler() http.Handler { return s.handler }

// Run listens on the configured address and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.HTTP.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.HTTP.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the API on ln until the context is cancelled, then shuts the
// server down gracefully.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	collected := metrics.StartEventCollector(ctx, s.bus, s.Sink)
	if s.prom != nil && s.prom.ListenAddress != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.prom.ListenAddress, s.prom.Handler()); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.HTTP.ReadTimeout(),
		ReadHeaderTimeout: s.cfg.HTTP.ReadTimeout(),
		WriteTimeout:      s.cfg.HTTP.WriteTimeout(),
		IdleTimeout:       s.cfg.HTTP.IdleTimeout(),
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("http shutdown: %v", err)
	}
	s.bus.Close()
	<-collected
	if n := s.bus.Dropped(); n > 0 {
		s.log.Warnf("event bus dropped %d events", n)
	}
	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	closeSink(s.Sink)
	s.Monitor.Flush(2 * time.Second)
	return s.Store.Close()
}

func closeSink(sink coremetrics.MetricsSink) {
	if c, ok := sink.(coremetrics.Closer); ok {
		if err := c.Close(); err != nil {
			logger.New("service").Errorf("close sink: %v", err)
		}
	}
}
