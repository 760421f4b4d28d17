package restapi

import (
	"errors"
	"net/http"

	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/utils"
)

func (api *RestAPI) milestonesForCohortHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateRecordID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	milestones, err := api.Manager.MilestonesForCohort(r.Context(), id)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	references := models.NewEmptyReferences()
	if cohort, err := api.Manager.Cohort(r.Context(), id); err == nil {
		references.Cohorts = append(references.Cohorts, cohort)
	}

	response := models.NewListResponse(milestones, references)
	api.sendResponse(w, r, response)
}

func (api *RestAPI) teamsForCohortHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateRecordID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	teams, err := api.Manager.TeamsForCohort(r.Context(), id)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewListResponse(teams, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
