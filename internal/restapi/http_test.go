package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"github.com/alexonufrak/dashboard-api/internal/app"
	"github.com/alexonufrak/dashboard-api/internal/appconf"
	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/identity"
	"github.com/alexonufrak/dashboard-api/internal/logging"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/sheets"
	"github.com/alexonufrak/dashboard-api/internal/sheets/sheetstest"
	"github.com/alexonufrak/dashboard-api/recorddb"
)

// testToken is accepted by the fake identity provider and maps to the
// seeded contact recCont00000001XY.
const testToken = "session-token-1"

// secondToken maps to recCont00000002XY.
const secondToken = "session-token-2"

// identityUpdates records the management API patches the fake identity
// provider receives, keyed by user ID.
type identityUpdates struct {
	mu    sync.Mutex
	users map[string]map[string]any
}

func (u *identityUpdates) record(user string, attrs map[string]any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users[user] = attrs
}

func (u *identityUpdates) get(user string) (map[string]any, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	attrs, ok := u.users[user]
	return attrs, ok
}

// createTestApi builds a RestAPI backed by a fake spreadsheet service, a
// fake identity provider, and an in-memory mirror, fully synced.
func createTestApi(t *testing.T) *RestAPI {
	api, _ := createTestApiWithIdentity(t)
	return api
}

func createTestApiWithIdentity(t *testing.T) (*RestAPI, *identityUpdates) {
	base := sheetstest.NewBase()
	sheetstest.SeedDashboard(base)

	sheetsServer := httptest.NewServer(base.Handler())
	t.Cleanup(sheetsServer.Close)

	updates := &identityUpdates{users: map[string]map[string]any{}}
	identityServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/userinfo":
			switch strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") {
			case testToken:
				_ = json.NewEncoder(w).Encode(map[string]string{
					"sub": "auth0|1", "email": "ada@example.test", "name": "Ada Lovelace",
				})
			case secondToken:
				_ = json.NewEncoder(w).Encode(map[string]string{
					"sub": "auth0|2", "email": "alan@example.test", "name": "Alan Turing",
				})
			default:
				w.WriteHeader(http.StatusUnauthorized)
			}
		case r.URL.Path == "/oauth/token":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "mgmt-token", "expires_in": 3600,
			})
		case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/api/v2/users/"):
			var attrs map[string]any
			_ = json.NewDecoder(r.Body).Decode(&attrs)
			updates.record(strings.TrimPrefix(r.URL.Path, "/api/v2/users/"), attrs)
			_ = json.NewEncoder(w).Encode(attrs)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(identityServer.Close)

	sheetsClient := sheets.NewClient(sheets.Config{
		BaseURL:           sheetsServer.URL,
		BaseID:            "appTESTBASE",
		Token:             "pat_test",
		RequestsPerSecond: 1000,
	})

	db, err := recorddb.NewClient(recorddb.NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := *appconf.Defaults()
	cfg.Env = appconf.Test
	cfg.ApiKeys = []string{"SERVICE"}
	cfg.AdminKeys = []string{"ADMIN"}

	manager := dashboard.NewManager(cfg, sheetsClient, db, nil)
	require.NoError(t, manager.Sync(context.Background()))

	application := &app.Application{
		Config:  cfg,
		Logger:  logging.NewStructuredLogger(io.Discard, slog.LevelInfo),
		Manager: manager,
		Identity: identity.NewClient(identity.Config{
			Domain: identityServer.URL,
		}),
	}

	return NewRestAPI(application), updates
}

func serveApi(t *testing.T, api *RestAPI) *httptest.Server {
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// doRequest makes an authenticated request and decodes the envelope.
func doRequest(t *testing.T, server *httptest.Server, method, endpoint, token string, payload any) (*http.Response, models.ResponseModel) {
	var body *bytes.Buffer
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(encoded)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, server.URL+endpoint, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var model models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&model)
	require.NoError(t, err)

	return resp, model
}

// entryFields re-decodes the entry in an envelope as a field map.
func entryFields(t *testing.T, model models.ResponseModel) map[string]any {
	data, ok := model.Data.(map[string]any)
	require.True(t, ok, "data is not an object: %v", model.Data)
	entry, ok := data["entry"].(map[string]any)
	require.True(t, ok, "entry is not an object: %v", data["entry"])
	return entry
}

// listEntries re-decodes the list in an envelope.
func listEntries(t *testing.T, model models.ResponseModel) []any {
	data, ok := model.Data.(map[string]any)
	require.True(t, ok, "data is not an object: %v", model.Data)
	list, ok := data["list"].([]any)
	require.True(t, ok, "list is not an array: %v", data["list"])
	return list
}

// fakeID builds a well-formed record ID that does not exist.
func fakeID(n int) string {
	return fmt.Sprintf("recMissing%07d", n)
}
