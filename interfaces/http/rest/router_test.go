package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/application/services"
	"github.com/xinran093/synthesisAI-V2/infrastructure/persistence/file"
	"github.com/xinran093/synthesisAI-V2/pkg/observability"
)

type echoCompleter struct{}

func (echoCompleter) Complete(ctx context.Context, text string) (string, error) {
	return "echo: " + text, nil
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	logger := zap.NewNop()

	eventLog, err := file.NewEventLog(filepath.Join(dir, "events.ndjson"), logger)
	require.NoError(t, err)
	graphStore, err := file.NewGraphStore(filepath.Join(dir, "network.json"))
	require.NoError(t, err)

	router := NewRouter(
		services.NewDatasetService(logger, nil),
		eventLog,
		graphStore,
		echoCompleter{},
		observability.NewCollector("synthesisai"),
		logger,
		[]string{"*"},
		"",
	)
	return router.Setup()
}

func TestRouter_HealthAndReady(t *testing.T) {
	// Arrange
	handler := newTestServer(t)

	for _, path := range []string{"/health", "/ready"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()

			// Act
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			// Assert
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "status")
		})
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	// Arrange
	handler := newTestServer(t)
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_EventsRoundTrip(t *testing.T) {
	// Arrange
	handler := newTestServer(t)
	batch := `[{"type":"click","x":3}]`

	post := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(batch))
	post.Header.Set("Content-Type", "application/json")
	postRec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(postRec, post)
	require.Equal(t, http.StatusOK, postRec.Code)

	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	// Assert
	require.Equal(t, http.StatusOK, getRec.Code)
	var batches []json.RawMessage
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &batches))
	require.Len(t, batches, 1)
	assert.JSONEq(t, batch, string(batches[0]))
}

func TestRouter_DatasetPipeline(t *testing.T) {
	// Arrange
	handler := newTestServer(t)
	csv := "Student ID,First name,Comment ID,In response to comment ID,Comment text\n" +
		"s1,Alice,c1,,Hello networks\n" +
		"s2,Bob,c2,c1,Hello Alice\n"

	upload := httptest.NewRequest(http.MethodPost, "/api/datasets", strings.NewReader(csv))
	upload.Header.Set("Content-Type", "text/csv")
	uploadRec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(uploadRec, upload)
	require.Equal(t, http.StatusOK, uploadRec.Code)

	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/api/graph-data", nil))

	// Assert
	require.Equal(t, http.StatusOK, getRec.Code)
	var data services.GraphData
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &data))
	assert.Len(t, data.Network.Nodes, 2)
	assert.Len(t, data.Network.Links, 1)
}

func TestRouter_AskAI(t *testing.T) {
	// Arrange
	handler := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/ask-ai", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "echo: hi", resp["ai"])
}
