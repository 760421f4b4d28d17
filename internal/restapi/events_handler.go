package restapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/utils"
)

func (api *RestAPI) eventsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from := query.Get("from")
	if err := utils.ValidateDate(from); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"from": {err.Error()},
		})
		return
	}

	search, err := utils.ValidateAndSanitizeQuery(query.Get("q"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"q": {err.Error()},
		})
		return
	}

	events, err := api.Manager.UpcomingEvents(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewListResponse(filterEvents(events, from, search), models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}

// filterEvents narrows the upcoming list to events starting on or after the
// given date and matching the search text. Blank filters pass everything.
func filterEvents(events []models.Event, from, search string) []models.Event {
	if from == "" && search == "" {
		return events
	}

	var cutoff time.Time
	if from != "" {
		cutoff, _ = time.Parse("2006-01-02", from)
	}
	search = strings.ToLower(search)

	filtered := make([]models.Event, 0, len(events))
	for _, event := range events {
		if !cutoff.IsZero() && !event.StartsAfter(cutoff.Add(-time.Nanosecond)) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(event.Name), search) {
			continue
		}
		filtered = append(filtered, event)
	}
	return filtered
}

func (api *RestAPI) eventHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateRecordID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	event, err := api.Manager.Event(r.Context(), id)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewEntryResponse(event, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
