package restapi

import (
	"errors"
	"net/http"

	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/utils"
)

func (api *RestAPI) rewardsHandler(w http.ResponseWriter, r *http.Request) {
	rewards, err := api.Manager.Rewards(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewListResponse(rewards, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}

func (api *RestAPI) claimRewardHandler(w http.ResponseWriter, r *http.Request) {
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

	transaction, err := api.Manager.ClaimReward(r.Context(), session.Contact.ID, id)
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		api.sendNotFound(w, r)
		return
	case errors.Is(err, dashboard.ErrInsufficientPoints):
		api.sendConflict(w, r, "insufficient point balance")
		return
	case errors.Is(err, dashboard.ErrRewardUnavailable):
		api.sendConflict(w, r, "reward is not available")
		return
	case err != nil:
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewCreatedResponse(transaction, models.NewEmptyReferences())
	api.sendResponse(w, r, response)
}
