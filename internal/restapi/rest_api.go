package restapi

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alexonufrak/dashboard-api/internal/app"
)

type RestAPI struct {
	*app.Application
	validate    *validator.Validate
	rateLimiter func(http.Handler) http.Handler
}

// NewRestAPI creates a new RestAPI instance with initialized payload
// validator and rate limiter.
func NewRestAPI(app *app.Application) *RestAPI {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report field errors under the wire name, not the Go field name.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RestAPI{
		Application: app,
		validate:    validate,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}
