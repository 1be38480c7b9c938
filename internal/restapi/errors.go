package restapi

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"communityconnect.org/internal/logging"
	"communityconnect.org/internal/models"
)

// serverErrorResponse logs err and sends a 500 with a message that does not
// reveal the cause.
func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	logging.LogError(logging.FromContext(r.Context()), message, err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("component", "rest_api"))

	setJSONResponseType(w)
	w.WriteHeader(http.StatusInternalServerError)
	body, encErr := json.Marshal(models.ErrorResponse{Error: message})
	if encErr != nil {
		return
	}
	_, _ = w.Write(append(body, '\n'))
}

// badRequestResponse sends a 400 with a single error message.
func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.sendJSON(w, r, http.StatusBadRequest, models.ErrorResponse{Error: message})
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	api.sendJSON(w, r, http.StatusBadRequest, models.FieldErrorsResponse{FieldErrors: fieldErrors})
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	api.sendNotFound(w, r, "Not found")
}

func (api *RestAPI) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	api.sendJSON(w, r, http.StatusMethodNotAllowed, models.ErrorResponse{Error: "Method not allowed"})
}

// serviceUnavailableResponse logs err and sends a 503.
func (api *RestAPI) serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	logging.LogError(logging.FromContext(r.Context()), message, err,
		slog.String("path", r.URL.Path),
		slog.String("component", "rest_api"))
	api.sendJSON(w, r, http.StatusServiceUnavailable, models.ErrorResponse{Error: message})
}
