package app

import "net/http"

// RequestHasInvalidAPIKey reports whether the request's "key" query
// parameter fails the configured API key list.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	return app.IsInvalidAPIKey(key)
}

func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}

	for _, validKey := range app.Config.ApiKeys {
		if key == validKey {
			return false
		}
	}

	return true
}

// IsInvalidAdminKey checks a key against the admin key list. Admin keys
// gate operational endpoints such as cache invalidation.
func (app *Application) IsInvalidAdminKey(key string) bool {
	if key == "" {
		return true
	}

	for _, validKey := range app.Config.AdminKeys {
		if key == validKey {
			return false
		}
	}

	return true
}
