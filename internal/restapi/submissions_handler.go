package restapi

import (
	"errors"
	"net/http"

	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/utils"
)

func (api *RestAPI) submissionsForTeamHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateRecordID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {err.Error()},
		})
		return
	}

	submissions, err := api.Manager.SubmissionsForTeam(r.Context(), id)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewListResponse(submissions, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}

type createSubmissionPayload struct {
	TeamID      string `json:"teamId" validate:"required,len=17,startswith=rec"`
	MilestoneID string `json:"milestoneId" validate:"required,len=17,startswith=rec"`
	Link        string `json:"link" validate:"required,url,max=2000"`
	Comments    string `json:"comments" validate:"max=5000"`
}

func (api *RestAPI) createSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		api.sendUnauthorized(w, r)
		return
	}

	var payload createSubmissionPayload
	if !api.decodePayload(w, r, &payload) {
		return
	}

	// Submissions are made on behalf of a team the caller belongs to.
	team, err := api.Manager.Team(r.Context(), payload.TeamID)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !team.HasMember(session.Contact.ID) {
		api.sendUnauthorized(w, r)
		return
	}

	submission, err := api.Manager.CreateSubmission(r.Context(),
		payload.TeamID, payload.MilestoneID, session.Contact.ID,
		payload.Link, utils.SanitizeInput(payload.Comments))
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewCreatedResponse(submission, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
