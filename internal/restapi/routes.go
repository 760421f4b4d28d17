package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetRoutes registers every API route on the router. Handlers are wrapped
// by requireSession except /health, /metrics, pprof, and the operational
// endpoints, which are gated by the API and admin key lists instead.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/v1/profile", requireSession(api, api.profileHandler))
	router.Handler(http.MethodPatch, "/api/v1/profile", requireSession(api, api.updateProfileHandler))

	router.Handler(http.MethodGet, "/api/v1/programs", requireSession(api, api.programsHandler))
	router.Handler(http.MethodGet, "/api/v1/programs/:id", requireSession(api, api.programHandler))
	router.Handler(http.MethodGet, "/api/v1/programs/:id/cohorts", requireSession(api, api.cohortsForProgramHandler))

	router.Handler(http.MethodGet, "/api/v1/cohorts/:id/milestones", requireSession(api, api.milestonesForCohortHandler))
	router.Handler(http.MethodGet, "/api/v1/cohorts/:id/teams", requireSession(api, api.teamsForCohortHandler))

	router.Handler(http.MethodGet, "/api/v1/teams/:id", requireSession(api, api.teamHandler))
	router.Handler(http.MethodPost, "/api/v1/teams", requireSession(api, api.createTeamHandler))
	router.Handler(http.MethodPatch, "/api/v1/teams/:id", requireSession(api, api.updateTeamHandler))
	router.Handler(http.MethodPost, "/api/v1/teams/:id/members", requireSession(api, api.addTeamMemberHandler))
	router.Handler(http.MethodDelete, "/api/v1/teams/:id/members/:contactId", requireSession(api, api.removeTeamMemberHandler))
	router.Handler(http.MethodGet, "/api/v1/teams/:id/submissions", requireSession(api, api.submissionsForTeamHandler))

	router.Handler(http.MethodPost, "/api/v1/submissions", requireSession(api, api.createSubmissionHandler))

	router.Handler(http.MethodGet, "/api/v1/events", requireSession(api, api.eventsHandler))
	router.Handler(http.MethodGet, "/api/v1/events/:id", requireSession(api, api.eventHandler))

	router.Handler(http.MethodGet, "/api/v1/rewards", requireSession(api, api.rewardsHandler))
	router.Handler(http.MethodPost, "/api/v1/rewards/:id/claim", requireSession(api, api.claimRewardHandler))

	router.Handler(http.MethodGet, "/api/v1/points/transactions", requireSession(api, api.pointTransactionsHandler))
	router.Handler(http.MethodGet, "/api/v1/points/leaderboard", requireSession(api, api.leaderboardHandler))

	router.Handler(http.MethodPost, "/api/v1/sync", validateAPIKey(api, api.syncHandler))
	router.Handler(http.MethodPost, "/api/v1/cache/invalidate", validateAdminKey(api, api.cacheInvalidateHandler))

	router.HandlerFunc(http.MethodGet, "/health", api.healthHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	registerPprofHandlers(router)
}

// Handler assembles the full middleware chain around the router.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter(handler)
	handler = NewRequestIDMiddleware()(handler)
	handler = api.WithSecurityHeaders(handler)

	return handler
}

func registerPprofHandlers(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug/pprof/", pprof.Index)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/cmdline", pprof.Cmdline)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/profile", pprof.Profile)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/symbol", pprof.Symbol)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/trace", pprof.Trace)
}
