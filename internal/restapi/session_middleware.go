package restapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/identity"
	"github.com/alexonufrak/dashboard-api/internal/models"
	"github.com/alexonufrak/dashboard-api/internal/utils"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Session is the authenticated caller: the identity-provider view of the
// user plus the contact record linked to it.
type Session struct {
	Identity identity.Identity
	Contact  models.Contact
}

// requireSession validates the bearer token, resolves the linked contact,
// and stores both on the request context. Requests with a missing or
// invalid token get a 401; a valid token with no linked contact gets a 404.
func requireSession(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := utils.ExtractBearerToken(r)
		if token == "" {
			api.sendUnauthorized(w, r)
			return
		}

		ident, err := api.Identity.ValidateToken(r.Context(), token)
		if errors.Is(err, identity.ErrInvalidToken) {
			api.sendUnauthorized(w, r)
			return
		}
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}

		contact, err := api.Manager.ContactForAuthID(r.Context(), ident.Sub)
		if errors.Is(err, dashboard.ErrNotFound) {
			api.sendNotFound(w, r)
			return
		}
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}

		session := Session{Identity: ident, Contact: contact}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		finalHandler(w, r.WithContext(ctx))
	})
}

// sessionFromContext returns the Session stored by requireSession. The bool
// is false on routes that bypass the middleware.
func sessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// validateAdminKey gates operational endpoints behind the admin key list.
func validateAdminKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.IsInvalidAdminKey(r.URL.Query().Get("key")) {
			api.invalidAdminKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// validateAPIKey gates service-to-service endpoints behind the API key list.
func validateAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}
