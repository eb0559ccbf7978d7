package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/application/services"
)

const uploadCSV = `Student ID,First name,Comment ID,In response to comment ID,Comment text
s1,Alice,c1,,Opening thoughts on networks
s2,Bob,c2,c1,Replying to Alice about networks
`

func newDatasetHandler(t *testing.T) *DatasetHandler {
	t.Helper()
	svc := services.NewDatasetService(zap.NewNop(), nil)
	return NewDatasetHandler(svc, zap.NewNop())
}

func TestDatasetHandler_UploadDataset_RawBody(t *testing.T) {
	// Arrange
	handler := newDatasetHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/datasets", strings.NewReader(uploadCSV))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()

	// Act
	handler.UploadDataset(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var data services.GraphData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Len(t, data.Network.Nodes, 2)
	assert.Len(t, data.Network.Links, 1)
	assert.Contains(t, data.WordCloudText, "Opening thoughts")
}

func TestDatasetHandler_UploadDataset_MultipartForm(t *testing.T) {
	// Arrange
	handler := newDatasetHandler(t)
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "discussion.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(uploadCSV))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	// Act
	handler.UploadDataset(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var data services.GraphData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Len(t, data.Network.Nodes, 2)
}

func TestDatasetHandler_UploadDataset_EmptyBody(t *testing.T) {
	// Arrange
	handler := newDatasetHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/datasets", strings.NewReader(""))
	rec := httptest.NewRecorder()

	// Act
	handler.UploadDataset(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDatasetHandler_GetGraphData_BeforeAnyUpload(t *testing.T) {
	// Arrange
	handler := newDatasetHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/graph-data", nil)
	rec := httptest.NewRecorder()

	// Act
	handler.GetGraphData(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDatasetHandler_UploadThenGetGraphData(t *testing.T) {
	// Arrange
	handler := newDatasetHandler(t)
	upload := httptest.NewRequest(http.MethodPost, "/api/datasets", strings.NewReader(uploadCSV))
	handler.UploadDataset(httptest.NewRecorder(), upload)

	req := httptest.NewRequest(http.MethodGet, "/api/graph-data", nil)
	rec := httptest.NewRecorder()

	// Act
	handler.GetGraphData(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var data services.GraphData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Len(t, data.Network.Nodes, 2)
	assert.NotEmpty(t, data.Terms)
}
