package restapi

import (
	"encoding/json"
	"net/http"
	"time"
)

type healthStatus struct {
	Status       string `json:"status"`
	LastSync     string `json:"lastSync,omitempty"`
	SyncError    string `json:"syncError,omitempty"`
	CacheEntries int    `json:"cacheEntries"`
	CacheHits    uint64 `json:"cacheHits"`
	CacheMisses  uint64 `json:"cacheMisses"`
}

// healthHandler reports sync freshness and cache counters. It always
// answers 200 so load balancers keep routing while the mirror serves
// possibly stale reads.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	lastSync, syncErr := api.Manager.LastSync()
	hits, misses := api.Manager.Cache.Stats()

	status := healthStatus{
		Status:       "ok",
		CacheEntries: api.Manager.Cache.Len(),
		CacheHits:    hits,
		CacheMisses:  misses,
	}
	if !lastSync.IsZero() {
		status.LastSync = lastSync.UTC().Format(time.RFC3339)
	}
	if syncErr != nil {
		status.Status = "degraded"
		status.SyncError = syncErr.Error()
	}
	if lastSync.IsZero() {
		status.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		api.Logger.Error("failed to encode health response", "error", err)
	}
}
