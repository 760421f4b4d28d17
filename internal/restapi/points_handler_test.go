package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardsList(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodGet, "/api/v1/rewards", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := listEntries(t, model)
	require.Len(t, list, 1)
	reward := list[0].(map[string]any)
	assert.Equal(t, "Sticker Pack", reward["name"])
	assert.Equal(t, float64(30), reward["cost"])
}

func TestClaimReward(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodPost,
		"/api/v1/rewards/recRewd00000001XY/claim", testToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := entryFields(t, model)
	assert.Equal(t, float64(-30), entry["amount"])
	assert.Equal(t, "recRewd00000001XY", entry["rewardId"])

	resp, model = doRequest(t, server, http.MethodGet, "/api/v1/profile", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(70), entryFields(t, model)["pointsTotal"])
}

func TestClaimRewardInsufficientBalance(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodPost,
		"/api/v1/rewards/recRewd00000001XY/claim", secondToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "insufficient point balance", model.Text)
}

func TestClaimUnknownReward(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, _ := doRequest(t, server, http.MethodPost,
		"/api/v1/rewards/"+fakeID(3)+"/claim", testToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPointTransactions(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodGet,
		"/api/v1/points/transactions", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := listEntries(t, model)
	require.Len(t, list, 1)
	transaction := list[0].(map[string]any)
	assert.Equal(t, float64(100), transaction["amount"])
	assert.Equal(t, "Milestone 1", transaction["reason"])
}

func TestLeaderboard(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodGet,
		"/api/v1/points/leaderboard?cohortId=recCoh000000001XY", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := listEntries(t, model)
	require.Len(t, list, 1)
	entry := list[0].(map[string]any)
	assert.Equal(t, float64(1), entry["rank"])
	assert.Equal(t, "Ada Lovelace", entry["name"])
	assert.Equal(t, float64(100), entry["points"])
}

func TestLeaderboardRequiresCohortID(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, _ := doRequest(t, server, http.MethodGet,
		"/api/v1/points/leaderboard", testToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEventsList(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodGet, "/api/v1/events", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := listEntries(t, model)
	require.Len(t, list, 1)
	event := list[0].(map[string]any)
	assert.Equal(t, "Demo Day", event["name"])
}

func TestEventsListFilters(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	// Demo Day starts 2099-05-01.
	resp, model := doRequest(t, server, http.MethodGet,
		"/api/v1/events?from=2099-05-01", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, listEntries(t, model), 1)

	resp, model = doRequest(t, server, http.MethodGet,
		"/api/v1/events?from=2099-06-01", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, listEntries(t, model))

	resp, model = doRequest(t, server, http.MethodGet,
		"/api/v1/events?q=demo", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, listEntries(t, model), 1)

	resp, model = doRequest(t, server, http.MethodGet,
		"/api/v1/events?q=retro", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, listEntries(t, model))
}

func TestEventsListRejectsBadFilters(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, _ := doRequest(t, server, http.MethodGet,
		"/api/v1/events?from=May+2099", testToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, server, http.MethodGet,
		"/api/v1/events?q=%3Cscript%3E", testToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEventEntry(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := doRequest(t, server, http.MethodGet,
		"/api/v1/events/recEvnt00000001XY", testToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entry := entryFields(t, model)
	assert.Equal(t, "Demo Day", entry["name"])
	assert.Equal(t, "Main Hall", entry["location"])
}
