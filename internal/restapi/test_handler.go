package restapi

import (
	"net/http"

	"communityconnect.org/internal/models"
)

func (api *RestAPI) testHandler(w http.ResponseWriter, r *http.Request) {
	api.sendJSON(w, r, http.StatusOK, models.Message{Message: "Backend is working!"})
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := api.DB.Ping(ctx); err != nil {
		api.serviceUnavailableResponse(w, r, err, "Database unavailable")
		return
	}

	n, err := api.DB.CountBusinesses(ctx)
	if err != nil {
		api.serviceUnavailableResponse(w, r, err, "Database unavailable")
		return
	}

	api.sendJSON(w, r, http.StatusOK, models.Health{Status: "ok", Businesses: n})
}
