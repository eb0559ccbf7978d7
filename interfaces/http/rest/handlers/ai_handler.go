package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/application/ports"
)

// askRequest is the chat proxy request body.
type askRequest struct {
	Text string `json:"text"`
}

// AIHandler proxies user text to the chat-completion collaborator.
type AIHandler struct {
	completer ports.ChatCompleter
	logger    *zap.Logger
}

// NewAIHandler creates an AI handler.
func NewAIHandler(completer ports.ChatCompleter, logger *zap.Logger) *AIHandler {
	return &AIHandler{completer: completer, logger: logger}
}

// AskAI handles POST /api/ask-ai. The response is {ai} on success or
// {error} with the upstream message verbatim; there is no retry.
func (h *AIHandler) AskAI(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		respondJSON(w, h.logger, http.StatusBadRequest, map[string]string{"error": "No text provided."})
		return
	}

	reply, err := h.completer.Complete(r.Context(), req.Text)
	if err != nil {
		h.logger.Warn("Chat completion failed", zap.Error(err))
		respondJSON(w, h.logger, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{"ai": reply})
}
