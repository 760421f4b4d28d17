package restapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheInvalidateRequiresAdminKey(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodPost,
		"/api/v1/cache/invalidate", "", map[string]any{"type": "teams"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", model.Text)

	resp, _ = doRequest(t, server, http.MethodPost,
		"/api/v1/cache/invalidate?key=WRONG", "", map[string]any{"type": "teams"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCacheInvalidateByType(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	// Warm the team cache, then invalidate it.
	resp, _ := doRequest(t, server, http.MethodGet,
		"/api/v1/teams/recTeam00000001XY", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, model := doRequest(t, server, http.MethodPost,
		"/api/v1/cache/invalidate?key=ADMIN", "", map[string]any{"type": "teams"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := model.Data.(map[string]any)
	assert.Equal(t, "teams", data["type"])
	assert.GreaterOrEqual(t, data["removed"], float64(1))
}

func TestCacheInvalidateUnknownTypeIsNoOp(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodPost,
		"/api/v1/cache/invalidate?key=ADMIN", "", map[string]any{"type": "bogus"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no matching cache type", model.Text)

	data := model.Data.(map[string]any)
	assert.Equal(t, float64(0), data["removed"])
}

func TestCacheInvalidateMalformedTypeRejected(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, _ := doRequest(t, server, http.MethodPost,
		"/api/v1/cache/invalidate?key=ADMIN", "", map[string]any{"type": "<script>"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestForceSyncRequiresAPIKey(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodPost, "/api/v1/sync", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", model.Text)

	resp, _ = doRequest(t, server, http.MethodPost, "/api/v1/sync?key=WRONG", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestForceSync(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodPost, "/api/v1/sync?key=SERVICE", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := model.Data.(map[string]any)
	assert.NotEmpty(t, data["lastSync"])
}

func TestPprofIndex(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, err := http.Get(server.URL + "/debug/pprof/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthReportsSyncState(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status struct {
		Status   string `json:"status"`
		LastSync string `json:"lastSync"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status.Status)
	assert.NotEmpty(t, status.LastSync)
}

func TestMetricsEndpoint(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
