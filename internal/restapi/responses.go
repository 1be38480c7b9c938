package restapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"communityconnect.org/internal/directory"
	"communityconnect.org/internal/logging"
	"communityconnect.org/internal/models"
)

// sendJSON writes v with the given status code.
func (api *RestAPI) sendJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		api.serverErrorResponse(w, r, err, "Failed to encode response")
		return
	}

	setJSONResponseType(w)
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to write response", err)
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request, message string) {
	api.sendJSON(w, r, http.StatusNotFound, models.ErrorResponse{Error: message})
}

func setJSONResponseType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
}

func toBusinessModel(l directory.Listing) models.Business {
	return models.Business{
		ID:          l.ID,
		Name:        l.Name,
		Category:    l.Category,
		Location:    l.Location,
		Description: l.Description,
		Phone:       l.Phone,
		WhatsApp:    l.WhatsApp,
		Hours:       l.Hours,
		Image:       l.Image,
		Rating:      l.Rating,
		ReviewCount: l.ReviewCount,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		CreatedAt:   l.CreatedAt,
		Distance:    l.DistanceKm,
		Direction:   l.Direction,
	}
}

func toBusinessModels(listings []directory.Listing) []models.Business {
	out := make([]models.Business, len(listings))
	for i, l := range listings {
		out[i] = toBusinessModel(l)
	}
	return out
}

// decodeJSONBody reads a single JSON object from the request body into dst.
// The returned error is safe to show to the client.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, _ := strings.Cut(ct, ";")
		if strings.TrimSpace(strings.ToLower(mediaType)) != "application/json" {
			return errors.New("Content-Type must be application/json")
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return fmt.Errorf("request body must not be larger than %d bytes", maxRequestBodyBytes)
		case errors.Is(err, io.EOF):
			return errors.New("request body must not be empty")
		case strings.Contains(err.Error(), "unknown field"):
			return fmt.Errorf("request body contains an unknown field: %s", unknownFieldName(err.Error()))
		default:
			return errors.New("request body contains badly-formed JSON")
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must only contain a single JSON object")
	}
	return nil
}

func unknownFieldName(msg string) string {
	_, field, found := strings.Cut(msg, "unknown field ")
	if !found {
		return "unknown"
	}
	return strings.Trim(field, `"`)
}
