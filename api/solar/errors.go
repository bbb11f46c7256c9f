package solar

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/solarsim/core/simulator"
)

const (
	// MsgInvalidJSON is returned when the load body is not a JSON array of plants.
	MsgInvalidJSON = "Invalid Json format"
	// MsgUnexpected is the only detail a client gets about a 500.
	MsgUnexpected = "An unexpected error occurred"
)

// writeJSON encodes v with the given status.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}

// writeError maps err to the error envelope. Validation and malformed
// input are the caller's fault; anything else is logged and reported while
// the client only sees MsgUnexpected.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, route string, err error) {
	status := http.StatusInternalServerError
	msg := MsgUnexpected

	var verr *simulator.ValidationError
	var merr *simulator.MalformedInputError
	switch {
	case errors.As(err, &verr):
		status, msg = http.StatusBadRequest, verr.Msg
	case errors.As(err, &merr):
		status, msg = http.StatusBadRequest, merr.Msg
	default:
		h.log.Errorf("%s: %v", route, err)
		h.mon.CaptureException(err, map[string]string{
			"route":      route,
			"request_id": RequestIDFromContext(r.Context()),
		})
	}
	h.writeJSON(w, status, errorDTO{
		Timestamp: h.now().UnixMilli(),
		Status:    status,
		Error:     msg,
	})
}
