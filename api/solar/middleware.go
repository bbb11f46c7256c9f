package solar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/solarsim/core/metrics"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// MaxRequestIDLen bounds client supplied identifiers. Longer or non
// printable ones are replaced with a fresh uuid.
const MaxRequestIDLen = 128

type ctxKey struct{}

// RequestIDFromContext returns the identifier assigned by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithRequestID assigns every request an identifier, reusing the one sent
// by the client when present, and echoes it in the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

// instrument records the outcome of every request served by next under
// the given route name.
func (h *Handler) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			if p := recover(); p != nil {
				h.log.Errorf("%s: panic: %v", route, p)
				h.mon.CaptureException(fmt.Errorf("panic: %v", p), map[string]string{
					"route":      route,
					"request_id": RequestIDFromContext(r.Context()),
				})
				if rec.status == 0 {
					h.writeJSON(rec, http.StatusInternalServerError, errorDTO{
						Timestamp: h.now().UnixMilli(),
						Status:    http.StatusInternalServerError,
						Error:     MsgUnexpected,
					})
				}
			}
			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			elapsed := time.Since(start)
			if err := h.rec.RecordRequest(metrics.RequestEvent{Route: route, Code: rec.status, Duration: elapsed}); err != nil {
				h.log.Warnf("record request: %v", err)
			}
			if h.accessLog {
				h.log.Infow("request", map[string]any{
					"request_id": RequestIDFromContext(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"route":      route,
					"status":     rec.status,
					"duration":   elapsed.String(),
				})
			}
		}()
		next(rec, r)
	})
}
