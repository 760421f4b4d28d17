package webui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexonufrak/dashboard-api/internal/app"
	"github.com/alexonufrak/dashboard-api/internal/appconf"
	"github.com/alexonufrak/dashboard-api/internal/dashboard"
)

func TestDebugIndexRedactsSecrets(t *testing.T) {
	cfg := *appconf.Defaults()
	cfg.SheetsToken = "pat_secret_value"
	cfg.IdentityClientSecret = "client_secret_value"

	webUI := &WebUI{App: &app.Application{
		Config:  cfg,
		Manager: dashboard.NewManager(cfg, nil, nil, nil),
	}}

	mux := http.NewServeMux()
	webUI.SetWebUIRoutes(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Get(server.URL + "/debug/?dataType=config")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(body), "pat_secret_value"))
	assert.False(t, strings.Contains(string(body), "client_secret_value"))
	assert.True(t, strings.Contains(string(body), "redacted"))
}

func TestDebugIndexDefaultListsSections(t *testing.T) {
	webUI := &WebUI{App: &app.Application{
		Config:  *appconf.Defaults(),
		Manager: dashboard.NewManager(*appconf.Defaults(), nil, nil, nil),
	}}

	mux := http.NewServeMux()
	webUI.SetWebUIRoutes(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Get(server.URL + "/debug/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "cache")
}
