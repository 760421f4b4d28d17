// Package webui serves a development-only debug page for inspecting the
// server's runtime state.
package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"github.com/alexonufrak/dashboard-api/internal/app"
)

//go:embed debug_index.html
var templateFS embed.FS

// WebUI holds the debug page's dependencies.
type WebUI struct {
	App *app.Application
}

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	err = tmpl.Execute(w, dataStruct)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "config":
		// Redact values that must not reach a browser.
		cfg := webUI.App.Config
		cfg.SheetsToken = "<redacted>"
		cfg.IdentityClientSecret = "<redacted>"
		cfg.ApiKeys = nil
		cfg.AdminKeys = nil
		data = cfg
		title = "Dashboard - Configuration"
	case "sync":
		lastSync, syncErr := webUI.App.Manager.LastSync()
		data = map[string]interface{}{
			"lastSync":  lastSync,
			"lastError": syncErr,
		}
		title = "Dashboard - Sync Status"
	case "cache":
		hits, misses := webUI.App.Manager.Cache.Stats()
		data = map[string]interface{}{
			"entries": webUI.App.Manager.Cache.Len(),
			"hits":    hits,
			"misses":  misses,
		}
		title = "Dashboard - Cache Counters"
	default:
		data = []string{"config", "sync", "cache"}
		title = "Dashboard - Debug Index"
	}

	writeDebugData(w, title, data)
}
