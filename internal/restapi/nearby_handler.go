package restapi

import (
	"net/http"

	"communityconnect.org/internal/directory"
	"communityconnect.org/internal/utils"
)

// parseLimit reads the optional limit parameter. Zero means not given.
func parseLimit(r *http.Request, fieldErrors map[string][]string) (int, map[string][]string) {
	queryParams := r.URL.Query()
	limit, fieldErrors := utils.ParseIntParam(queryParams, "limit", fieldErrors)
	if queryParams.Get("limit") != "" && len(fieldErrors["limit"]) == 0 {
		if err := utils.ValidateLimit(limit, directory.MaxLimit); err != nil {
			fieldErrors["limit"] = append(fieldErrors["limit"], err.Error())
		}
	}
	return limit, fieldErrors
}

func (api *RestAPI) nearbyHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	reference, fieldErrors := utils.ParseOptionalCoordinate(queryParams, nil)

	radius, fieldErrors := utils.ParseFloatParam(queryParams, "radius", fieldErrors)
	if len(fieldErrors["radius"]) == 0 {
		if err := utils.ValidateRadius(radius); err != nil {
			fieldErrors["radius"] = append(fieldErrors["radius"], err.Error())
		}
	}

	limit, fieldErrors := parseLimit(r, fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	listings, err := api.Directory.Nearby(r.Context(), directory.NearbyQuery{
		Reference: reference,
		RadiusKm:  radius,
		Limit:     limit,
	})
	if err != nil {
		api.serverErrorResponse(w, r, err, "Failed to fetch nearby businesses")
		return
	}

	api.sendJSON(w, r, http.StatusOK, toBusinessModels(listings))
}

func (api *RestAPI) featuredHandler(w http.ResponseWriter, r *http.Request) {
	limit, fieldErrors := parseLimit(r, nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	listings, err := api.Directory.Featured(r.Context(), limit)
	if err != nil {
		api.serverErrorResponse(w, r, err, "Failed to fetch featured businesses")
		return
	}

	api.sendJSON(w, r, http.StatusOK, toBusinessModels(listings))
}
