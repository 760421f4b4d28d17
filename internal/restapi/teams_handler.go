package restapi

import (
	"errors"
	"net/http"

	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/utils"
)

func (api *RestAPI) teamHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateRecordID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	team, err := api.Manager.Team(r.Context(), id)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewEntryResponse(team, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}

type createTeamPayload struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	CohortID    string `json:"cohortId" validate:"omitempty,len=17,startswith=rec"`
}

func (api *RestAPI) createTeamHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		api.sendUnauthorized(w, r)
		return
	}

	var payload createTeamPayload
	if !api.decodePayload(w, r, &payload) {
		return
	}

	team, err := api.Manager.CreateTeam(r.Context(),
		utils.SanitizeInput(payload.Name),
		utils.SanitizeInput(payload.Description),
		payload.CohortID,
		session.Contact.ID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewCreatedResponse(team, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}

type updateTeamPayload struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url,max=2000"`
}

func (p updateTeamPayload) fields() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["Name"] = *p.Name
	}
	if p.Description != nil {
		fields["Description"] = *p.Description
	}
	if p.ImageURL != nil {
		fields["Image URL"] = *p.ImageURL
	}
	return fields
}

func (api *RestAPI) updateTeamHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		api.sendUnauthorized(w, r)
		return
	}

	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateRecordID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	existing, err := api.Manager.Team(r.Context(), id)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	// Only roster members may edit a team.
	if !existing.HasMember(session.Contact.ID) {
		api.sendUnauthorized(w, r)
		return
	}

	var payload updateTeamPayload
	if !api.decodePayload(w, r, &payload) {
		return
	}

	fields := payload.fields()
	if len(fields) == 0 {
		api.badRequestResponse(w, r, "no updatable fields in request body")
		return
	}

	team, err := api.Manager.UpdateTeam(r.Context(), id, fields)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewEntryResponse(team, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
