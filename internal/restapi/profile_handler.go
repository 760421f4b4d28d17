package restapi

import (
	"net/http"

	"github.com/alexonufrak/dashboard-api/internal/logging"
	"github.com/alexonufrak/dashboard-api/internal/models"
)

func (api *RestAPI) profileHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		api.sendUnauthorized(w, r)
		return
	}

	references := models.NewEmptyReferences()
	for _, teamID := range session.Contact.TeamIDs {
		if team, err := api.Manager.Team(r.Context(), teamID); err == nil {
			references.Teams = append(references.Teams, team)
		}
	}

	response := models.NewEntryResponse(session.Contact, references)
	api.sendResponse(w, r, response)
}

type updateProfilePayload struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	Major     *string `json:"major" validate:"omitempty,max=200"`
	GradYear  *int    `json:"gradYear" validate:"omitempty,min=1900,max=2200"`
	Onboarded *bool   `json:"onboarded"`
}

// fields maps the payload onto spreadsheet column names, skipping fields
// the caller did not send.
func (p updateProfilePayload) fields() map[string]any {
	fields := map[string]any{}
	if p.FirstName != nil {
		fields["First Name"] = *p.FirstName
	}
	if p.LastName != nil {
		fields["Last Name"] = *p.LastName
	}
	if p.Bio != nil {
		fields["Bio"] = *p.Bio
	}
	if p.Major != nil {
		fields["Major"] = *p.Major
	}
	if p.GradYear != nil {
		fields["Graduation Year"] = *p.GradYear
	}
	if p.Onboarded != nil {
		fields["Onboarded"] = *p.Onboarded
	}
	return fields
}

func (api *RestAPI) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		api.sendUnauthorized(w, r)
		return
	}

	var payload updateProfilePayload
	if !api.decodePayload(w, r, &payload) {
		return
	}

	fields := payload.fields()
	if len(fields) == 0 {
		api.badRequestResponse(w, r, "no updatable fields in request body")
		return
	}

	contact, err := api.Manager.UpdateContactProfile(r.Context(), session.Contact.ID, fields)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	// Name changes propagate to the identity provider so its records stay
	// in step. Best effort; the contact record is the source of truth.
	if payload.FirstName != nil || payload.LastName != nil {
		err := api.Identity.UpdateUser(r.Context(), session.Identity.Sub, map[string]any{
			"given_name":  contact.FirstName,
			"family_name": contact.LastName,
			"name":        contact.FullName(),
		})
		if err != nil {
			logging.LogError(api.Logger, "identity profile update failed", err)
		}
	}

	response := models.NewEntryResponse(contact, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
