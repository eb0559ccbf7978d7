package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/application/ports"
)

// maxSnapshotBytes bounds one saved snapshot.
const maxSnapshotBytes = 16 << 20

// networkSnapshot is the persistence contract for the derived graph/corpus.
type networkSnapshot struct {
	Network       json.RawMessage `json:"network"`
	WordCloudText *string         `json:"wordCloudText"`
}

// NetworkHandler persists and serves the last-saved graph/corpus snapshot.
type NetworkHandler struct {
	store  ports.GraphSnapshotStore
	logger *zap.Logger
}

// NewNetworkHandler creates a network handler.
func NewNetworkHandler(store ports.GraphSnapshotStore, logger *zap.Logger) *NetworkHandler {
	return &NetworkHandler{store: store, logger: logger}
}

// SaveNetwork handles POST /api/network. The body is
// {network:{nodes,links}, wordCloudText}; saving overwrites prior state.
func (h *NetworkHandler) SaveNetwork(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSnapshotBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "unreadable request body")
		return
	}

	var snapshot networkSnapshot
	if err := json.Unmarshal(body, &snapshot); err != nil || snapshot.Network == nil || snapshot.WordCloudText == nil {
		respondError(w, h.logger, http.StatusBadRequest, "body must contain network and wordCloudText")
		return
	}

	if err := h.store.Save(r.Context(), body); err != nil {
		h.logger.Error("Failed to save network snapshot", zap.Error(err))
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetNetwork handles GET /api/network, returning the last-saved snapshot or
// an empty object when nothing has ever been saved.
func (h *NetworkHandler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.store.Load(r.Context())
	if err != nil {
		h.logger.Error("Failed to load network snapshot", zap.Error(err))
		respondAppError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(snapshot); err != nil {
		h.logger.Error("Failed to write snapshot response", zap.Error(err))
	}
}
