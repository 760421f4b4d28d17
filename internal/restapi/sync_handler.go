package restapi

import (
	"net/http"
	"time"

	"github.com/alexonufrak/dashboard-api/internal/models"
)

// syncHandler pulls every mirrored table from the spreadsheet service
// immediately instead of waiting for the next periodic sync. Used by
// spreadsheet-side automations after bulk edits.
func (api *RestAPI) syncHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.Manager.Sync(r.Context()); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	lastSync, _ := api.Manager.LastSync()
	data := struct {
		LastSync time.Time `json:"lastSync"`
	}{
		LastSync: lastSync,
	}
	api.sendResponse(w, r, models.NewResponse(http.StatusOK, data, "OK"))
}
