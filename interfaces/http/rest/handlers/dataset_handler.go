package handlers

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/application/services"
)

// maxDatasetBytes bounds uploaded dataset size.
const maxDatasetBytes = 32 << 20

// DatasetHandler handles dataset ingestion and derived graph queries.
type DatasetHandler struct {
	datasets *services.DatasetService
	logger   *zap.Logger
}

// NewDatasetHandler creates a dataset handler.
func NewDatasetHandler(datasets *services.DatasetService, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{datasets: datasets, logger: logger}
}

// UploadDataset handles POST /api/datasets. The CSV arrives either as a
// multipart form field named "file" or as the raw request body. The derived
// graph fully replaces the prior one.
func (h *DatasetHandler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDatasetBytes)

	reader, err := h.datasetReader(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "dataset upload is empty or malformed")
		return
	}
	defer reader.Close()

	data, err := h.datasets.IngestCSV(r.Context(), reader)
	if err != nil {
		h.logger.Error("Failed to ingest dataset", zap.Error(err))
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, data)
}

// GetGraphData handles GET /api/graph-data, serving the current derived
// network, corpus and ranked terms to the rendering collaborator.
func (h *DatasetHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	data, ok := h.datasets.Current()
	if !ok {
		respondError(w, h.logger, http.StatusNotFound, "no dataset has been ingested")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, data)
}

func (h *DatasetHandler) datasetReader(r *http.Request) (io.ReadCloser, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		return file, nil
	}
	return r.Body, nil
}
