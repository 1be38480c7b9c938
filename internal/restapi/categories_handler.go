package restapi

import (
	"net/http"

	"communityconnect.org/internal/models"
)

func (api *RestAPI) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories := api.Directory.Categories()

	out := make([]models.Category, len(categories))
	for i, c := range categories {
		out[i] = models.Category{Name: c.Name, DisplayName: c.DisplayName, Icon: c.Icon}
	}

	api.sendJSON(w, r, http.StatusOK, out)
}
