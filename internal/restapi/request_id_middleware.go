package restapi

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader carries the request correlation ID. Incoming values are
// trusted so a proxy chain keeps one ID end to end.
const requestIDHeader = "X-Request-ID"

// NewRequestIDMiddleware assigns each request a correlation ID and echoes
// it on the response.
func NewRequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(requestIDHeader, id)
			}
			w.Header().Set(requestIDHeader, id)

			next.ServeHTTP(w, r)
		})
	}
}
