// Package solar exposes the network simulator over HTTP.
package solar

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/solarsim/core/logger"
	"github.com/kilianp07/solarsim/core/metrics"
	"github.com/kilianp07/solarsim/core/model"
	"github.com/kilianp07/solarsim/core/monitoring"
	"github.com/kilianp07/solarsim/core/simulator"
)

// DefaultMaxUploadBytes bounds request bodies when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// NetworkService is the set of simulator operations served over HTTP.
type NetworkService interface {
	Load(ctx context.Context, plants []model.PowerPlant) error
	NetworkState(ctx context.Context, t int) ([]model.PowerPlantOutput, error)
	NetworkOutput(ctx context.Context, t int) (model.NetworkOutput, error)
	UploadAndSimulate(ctx context.Context, t int, r io.Reader) (model.SimulationResult, error)
}

// Handler serves the /solar-simulator routes.
type Handler struct {
	svc       NetworkService
	log       logger.Logger
	mon       monitoring.Monitor
	rec       metrics.RequestRecorder
	maxBody   int64
	accessLog bool
	now       func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithMonitor reports unexpected errors to m.
func WithMonitor(m monitoring.Monitor) Option {
	return func(h *Handler) {
		if m != nil {
			h.mon = m
		}
	}
}

// WithRequestRecorder records every request outcome on r.
func WithRequestRecorder(r metrics.RequestRecorder) Option {
	return func(h *Handler) {
		if r != nil {
			h.rec = r
		}
	}
}

// WithMaxBodyBytes limits load and upload bodies to n bytes.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// WithAccessLog toggles the per-request log line.
func WithAccessLog(on bool) Option {
	return func(h *Handler) { h.accessLog = on }
}

// WithClock overrides the time source of error timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler builds a Handler around svc.
func NewHandler(svc NetworkService, opts ...Option) *Handler {
	h := &Handler{
		svc:     svc,
		log:     logger.NopLogger{},
		mon:     monitoring.NopMonitor{},
		rec:     metrics.NopSink{},
		maxBody: DefaultMaxUploadBytes,
		now:     time.Now,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Register mounts the simulator routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("GET /solar-simulator/network/{T}", h.instrument("network_state", h.networkState))
	mux.Handle("GET /solar-simulator/output/{T}", h.instrument("network_output", h.networkOutput))
	mux.Handle("POST /solar-simulator/load", h.instrument("load", h.load))
	mux.Handle("POST /solar-simulator/upload", h.instrument("upload", h.upload))
	mux.Handle("GET /healthz", h.instrument("healthz", h.healthz))
}

// Routes returns a ServeMux with every route registered and request ids
// assigned.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)
	return WithRequestID(mux)
}

func parseT(raw string) (int, error) {
	t, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &simulator.ValidationError{Msg: simulator.MsgInvalidT}
	}
	return t, nil
}

func (h *Handler) networkState(w http.ResponseWriter, r *http.Request) {
	t, err := parseT(r.PathValue("T"))
	if err != nil {
		h.writeError(w, r, "network_state", err)
		return
	}
	outs, err := h.svc.NetworkState(r.Context(), t)
	if err != nil {
		h.writeError(w, r, "network_state", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toPlantOutputs(outs))
}

func (h *Handler) networkOutput(w http.ResponseWriter, r *http.Request) {
	t, err := parseT(r.PathValue("T"))
	if err != nil {
		h.writeError(w, r, "network_output", err)
		return
	}
	out, err := h.svc.NetworkOutput(r.Context(), t)
	if err != nil {
		h.writeError(w, r, "network_output", err)
		return
	}
	h.writeJSON(w, http.StatusOK, networkOutputDTO{TotalOutputInKwh: number(out.TotalOutputKWh)})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) {
	plants, err := simulator.ParsePlants(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		if errors.Is(err, simulator.ErrMalformedInput) {
			err = &simulator.MalformedInputError{Msg: MsgInvalidJSON, Err: err}
		}
		h.writeError(w, r, "load", err)
		return
	}
	if err := h.svc.Load(r.Context(), plants); err != nil {
		h.writeError(w, r, "load", err)
		return
	}
	w.WriteHeader(http.StatusResetContent)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, r, "upload", &simulator.MalformedInputError{Msg: simulator.MsgErrorReadingFile, Err: err})
		return
	}
	defer func() { _ = file.Close() }()
	t, err := parseT(r.FormValue("T"))
	if err != nil {
		h.writeError(w, r, "upload", err)
		return
	}
	res, err := h.svc.UploadAndSimulate(r.Context(), t, file)
	if err != nil {
		h.writeError(w, r, "upload", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toSimulationResult(res))
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}
