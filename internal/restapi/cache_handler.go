package restapi

import (
	"net/http"

	"github.com/alexonufrak/dashboard-api/internal/cache"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/utils"
)

type cacheInvalidatePayload struct {
	Type string   `json:"type" validate:"required"`
	IDs  []string `json:"ids" validate:"omitempty,dive,len=17,startswith=rec"`
}

// cacheInvalidateHandler drops cached lookups for a record type. Used by
// spreadsheet-side automations to push changes ahead of the next sync.
func (api *RestAPI) cacheInvalidateHandler(w http.ResponseWriter, r *http.Request) {
	var payload cacheInvalidatePayload
	if !api.decodePayload(w, r, &payload) {
		return
	}

	if err := utils.ValidateID(payload.Type); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"type": {err.Error()},
		})
		return
	}

	// Unknown types are a no-op, not an error; automations may fire for
	// tables this service does not mirror.
	text := "OK"
	if !cache.KnownType(cache.Type(payload.Type)) {
		text = "no matching cache type"
	}

	removed := api.Manager.InvalidateCacheType(payload.Type, payload.IDs...)

	data := struct {
		Type    string `json:"type"`
		Removed int    `json:"removed"`
	}{
		Type:    payload.Type,
		Removed: removed,
	}
	api.sendResponse(w, r, models.NewResponse(http.StatusOK, data, text))
}
