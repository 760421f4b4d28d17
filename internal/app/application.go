package app

import (
	"log/slog"

	"github.com/alexonufrak/dashboard-api/internal/appconf"
	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/identity"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware: the loaded configuration, a structured logger, the
// dashboard data manager, and the identity-provider client used to
// validate bearer tokens.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Manager  *dashboard.Manager
	Identity *identity.Client
}
