package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/application/ports"
	"github.com/xinran093/synthesisAI-V2/pkg/observability"
)

// maxEventBatchBytes bounds one logged batch.
const maxEventBatchBytes = 4 << 20

// EventsHandler is the collection endpoint for activity event batches.
type EventsHandler struct {
	log     ports.EventLog
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewEventsHandler creates an events handler.
func NewEventsHandler(log ports.EventLog, metrics *observability.Collector, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{log: log, metrics: metrics, logger: logger}
}

// LogEvents handles POST /api/events. The body must be a JSON array of
// events; it is appended verbatim as one log line and acknowledged with the
// received count.
func (h *EventsHandler) LogEvents(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEventBatchBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "unreadable request body")
		return
	}

	var batch []json.RawMessage
	if err := json.Unmarshal(body, &batch); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "body must be a JSON array of events")
		return
	}

	if err := h.log.Append(r.Context(), body); err != nil {
		h.logger.Error("Failed to append event batch", zap.Error(err))
		respondAppError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.EventsLogged.Add(float64(len(batch)))
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"eventsReceived": len(batch),
	})
}

// GetEvents handles GET /api/events, returning every logged batch. A log
// that was never written yields an empty array, not an error.
func (h *EventsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	batches, err := h.log.ReadAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to read event log", zap.Error(err))
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, batches)
}
