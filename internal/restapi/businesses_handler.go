package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"communityconnect.org/internal/directory"
	"communityconnect.org/internal/models"
	"communityconnect.org/internal/utils"
)

const maxCategoryLength = 100

func (api *RestAPI) listBusinessesHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	reference, fieldErrors := utils.ParseOptionalCoordinate(queryParams, nil)

	search, err := utils.ValidateAndSanitizeQuery(queryParams.Get("search"))
	if err != nil {
		fieldErrors["search"] = append(fieldErrors["search"], err.Error())
	}

	category := utils.SanitizeInput(queryParams.Get("category"))
	if len(category) > maxCategoryLength {
		fieldErrors["category"] = append(fieldErrors["category"], "category too long (max 100 characters)")
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	listings, err := api.Directory.List(r.Context(), directory.Filter{
		Search:    search,
		Category:  category,
		Reference: reference,
	})
	if err != nil {
		api.serverErrorResponse(w, r, err, "Failed to fetch businesses")
		return
	}

	api.sendJSON(w, r, http.StatusOK, toBusinessModels(listings))
}

func (api *RestAPI) businessHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ValidateID(utils.ExtractIDFromParams(r, "id"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	listing, err := api.Directory.Get(r.Context(), id)
	if errors.Is(err, directory.ErrNotFound) {
		api.sendNotFound(w, r, "Business not found")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err, "Failed to fetch business")
		return
	}

	api.sendJSON(w, r, http.StatusOK, toBusinessModel(listing))
}

func (api *RestAPI) createBusinessHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBusinessRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	listing, err := api.Directory.Create(r.Context(), directory.NewBusiness{
		Name:        req.Name,
		Category:    req.Category,
		Location:    req.Location,
		Description: req.Description,
		Phone:       req.Phone,
		WhatsApp:    req.WhatsApp,
		Hours:       req.Hours,
		Image:       req.Image,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})

	var validationErr *directory.ValidationError
	if errors.As(err, &validationErr) {
		api.validationErrorResponse(w, r, validationErr.FieldErrors)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err, "Failed to add business")
		return
	}

	w.Header().Set("Location", "/api/businesses/"+strconv.FormatInt(listing.ID, 10))
	api.sendJSON(w, r, http.StatusCreated, toBusinessModel(listing))
}
