package restapi

import (
	"errors"
	"net/http"

	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/utils"
)

func (api *RestAPI) programsHandler(w http.ResponseWriter, r *http.Request) {
	programs, err := api.Manager.Programs(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewListResponse(programs, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}

func (api *RestAPI) programHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateRecordID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	program, err := api.Manager.Program(r.Context(), id)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	references := models.NewEmptyReferences()
	cohorts, err := api.Manager.CohortsForProgram(r.Context(), id)
	if err == nil {
		references.Cohorts = append(references.Cohorts, cohorts...)
	}

	response := models.NewEntryResponse(program, references)
	api.sendResponse(w, r, response)
}

func (api *RestAPI) cohortsForProgramHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateRecordID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	cohorts, err := api.Manager.CohortsForProgram(r.Context(), id)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewListResponse(cohorts, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
