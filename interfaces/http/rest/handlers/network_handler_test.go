package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/infrastructure/persistence/file"
)

func newNetworkHandler(t *testing.T) *NetworkHandler {
	t.Helper()
	store, err := file.NewGraphStore(filepath.Join(t.TempDir(), "network.json"))
	require.NoError(t, err)
	return NewNetworkHandler(store, zap.NewNop())
}

func TestNetworkHandler_GetNetwork_NeverSaved(t *testing.T) {
	// Arrange
	handler := newNetworkHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/network", nil)
	rec := httptest.NewRecorder()

	// Act
	handler.GetNetwork(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestNetworkHandler_SaveThenGetRoundTrip(t *testing.T) {
	// Arrange
	handler := newNetworkHandler(t)
	snapshot := `{"network":{"nodes":[{"id":"s1"}],"links":[]},"wordCloudText":"graphs"}`

	post := httptest.NewRequest(http.MethodPost, "/api/network", strings.NewReader(snapshot))
	postRec := httptest.NewRecorder()

	// Act
	handler.SaveNetwork(postRec, post)
	require.Equal(t, http.StatusOK, postRec.Code)

	get := httptest.NewRequest(http.MethodGet, "/api/network", nil)
	getRec := httptest.NewRecorder()
	handler.GetNetwork(getRec, get)

	// Assert
	require.Equal(t, http.StatusOK, getRec.Code)
	assert.JSONEq(t, snapshot, getRec.Body.String())
}

func TestNetworkHandler_SaveNetwork_RejectsIncompleteBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing wordCloudText", `{"network":{"nodes":[],"links":[]}}`},
		{"missing network", `{"wordCloudText":"text"}`},
		{"not json", `nonsense`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newNetworkHandler(t)
			req := httptest.NewRequest(http.MethodPost, "/api/network", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.SaveNetwork(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestNetworkHandler_SaveNetwork_OverwritesPriorSnapshot(t *testing.T) {
	// Arrange
	handler := newNetworkHandler(t)
	first := `{"network":{"nodes":[],"links":[]},"wordCloudText":"old"}`
	second := `{"network":{"nodes":[],"links":[]},"wordCloudText":"new"}`

	for _, body := range []string{first, second} {
		req := httptest.NewRequest(http.MethodPost, "/api/network", strings.NewReader(body))
		handler.SaveNetwork(httptest.NewRecorder(), req)
	}

	// Act
	rec := httptest.NewRecorder()
	handler.GetNetwork(rec, httptest.NewRequest(http.MethodGet, "/api/network", nil))

	// Assert
	assert.JSONEq(t, second, rec.Body.String())
}
