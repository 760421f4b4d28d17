package restapi

import (
	"errors"
	"net/http"

	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/utils"
)

type addTeamMemberPayload struct {
	ContactID string `json:"contactId" validate:"required,len=17,startswith=rec"`
	Role      string `json:"role" validate:"omitempty,oneof=Lead Member"`
}

func (api *RestAPI) addTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
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

	var payload addTeamMemberPayload
	if !api.decodePayload(w, r, &payload) {
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

	// Only current members may add to the roster.
	if !existing.HasMember(session.Contact.ID) {
		api.sendUnauthorized(w, r)
		return
	}

	team, err := api.Manager.AddTeamMember(r.Context(), id, payload.ContactID, payload.Role)
	if errors.Is(err, dashboard.ErrAlreadyMember) {
		api.sendConflict(w, r, "contact is already a member of this team")
		return
	}
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

func (api *RestAPI) removeTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		api.sendUnauthorized(w, r)
		return
	}

	teamID := utils.ExtractIDFromParams(r, "id")
	contactID := utils.ExtractIDFromParams(r, "contactId")

	fieldErrors := map[string][]string{}
	if err := utils.ValidateRecordID(teamID); err != nil {
		fieldErrors["id"] = []string{err.Error()}
	}
	if err := utils.ValidateRecordID(contactID); err != nil {
		fieldErrors["contactId"] = []string{err.Error()}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	existing, err := api.Manager.Team(r.Context(), teamID)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	// Members may remove themselves; otherwise the caller must be on the
	// roster too.
	if contactID != session.Contact.ID && !existing.HasMember(session.Contact.ID) {
		api.sendUnauthorized(w, r)
		return
	}

	err = api.Manager.RemoveTeamMember(r.Context(), teamID, contactID)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	team, err := api.Manager.Team(r.Context(), teamID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewEntryResponse(team, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
