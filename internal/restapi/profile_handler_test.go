package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRequiresToken(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodGet, "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", model.Text)
}

func TestProfileRejectsUnknownToken(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, _ := doRequest(t, server, http.MethodGet, "/api/v1/profile", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProfileReturnsLinkedContact(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodGet, "/api/v1/profile", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entry := entryFields(t, model)
	assert.Equal(t, "recCont00000001XY", entry["id"])
	assert.Equal(t, "ada@example.test", entry["email"])
	assert.Equal(t, float64(100), entry["pointsTotal"])

	data := model.Data.(map[string]any)
	references := data["references"].(map[string]any)
	teams := references["teams"].([]any)
	assert.Len(t, teams, 1)
}

func TestUpdateProfile(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodPatch, "/api/v1/profile", testToken,
		map[string]any{"bio": "Engine inventor", "major": "Mathematics"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entry := entryFields(t, model)
	assert.Equal(t, "Engine inventor", entry["bio"])
	assert.Equal(t, "Mathematics", entry["major"])
}

func TestUpdateProfileNameSyncsIdentity(t *testing.T) {
	api, updates := createTestApiWithIdentity(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodPatch, "/api/v1/profile", testToken,
		map[string]any{"lastName": "Byron"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entry := entryFields(t, model)
	assert.Equal(t, "Byron", entry["lastName"])

	attrs, ok := updates.get("auth0|1")
	require.True(t, ok, "identity provider was not patched")
	assert.Equal(t, "Byron", attrs["family_name"])
	assert.Equal(t, "Ada Byron", attrs["name"])
}

func TestUpdateProfileBioSkipsIdentity(t *testing.T) {
	api, updates := createTestApiWithIdentity(t)
	server := serveApi(t, api)

	resp, _ := doRequest(t, server, http.MethodPatch, "/api/v1/profile", testToken,
		map[string]any{"bio": "Engine inventor"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, ok := updates.get("auth0|1")
	assert.False(t, ok)
}

func TestUpdateProfileEmptyBodyRejected(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, _ := doRequest(t, server, http.MethodPatch, "/api/v1/profile", testToken,
		map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateProfileRejectsUnknownFields(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, _ := doRequest(t, server, http.MethodPatch, "/api/v1/profile", testToken,
		map[string]any{"email": "new@example.test"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
