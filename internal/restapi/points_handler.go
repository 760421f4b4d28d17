package restapi

import (
	"errors"
	"net/http"

	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/utils"
)

func (api *RestAPI) pointTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		api.sendUnauthorized(w, r)
		return
	}

	transactions, err := api.Manager.PointTransactionsForContact(r.Context(), session.Contact.ID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewListResponse(transactions, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}

func (api *RestAPI) leaderboardHandler(w http.ResponseWriter, r *http.Request) {
	cohortID := r.URL.Query().Get("cohortId")
	if err := utils.ValidateRecordID(cohortID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"cohortId": {err.Error()},
		})
		return
	}

	limit, _ := utils.ExtractPaginationParams(r, 25, 100)

	entries, err := api.Manager.LeaderboardForCohort(r.Context(), cohortID, limit)
	if errors.Is(err, dashboard.ErrNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewListResponse(entries, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
