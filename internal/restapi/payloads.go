package restapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxPayloadBytes caps request bodies; dashboard payloads are small.
const maxPayloadBytes = 1 << 20

// decodePayload reads and validates a JSON request body into dst. A false
// return means a response has already been written.
func (api *RestAPI) decodePayload(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxPayloadBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			api.badRequestResponse(w, r, "request body must not be empty")
		default:
			api.badRequestResponse(w, r, "request body is not valid JSON: "+err.Error())
		}
		return false
	}

	if err := api.validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			api.serverErrorResponse(w, r, err)
			return false
		}

		fieldErrors := make(map[string][]string)
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldErr := range validationErrs {
				name := fieldErr.Field()
				fieldErrors[name] = append(fieldErrors[name],
					"failed validation on '"+fieldErr.Tag()+"'")
			}
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return false
	}

	return true
}
