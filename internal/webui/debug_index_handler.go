package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"communityconnect.org/internal/directory"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title string
	Pre   string
}

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

func writeDebugData(w http.ResponseWriter, title string, data any) {
	dataStruct := debugData{
		Title: title,
		Pre:   dumper.Sdump(data),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := debugTemplate.Execute(w, dataStruct); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dataType := r.URL.Query().Get("dataType")

	var (
		data  any
		title string
		err   error
	)

	switch dataType {
	case "businesses":
		data, err = webUI.DB.ListBusinesses(ctx)
		title = "Directory - Businesses"
	case "nearby":
		data, err = webUI.Directory.Nearby(ctx, directory.NearbyQuery{Limit: directory.MaxLimit})
		title = "Directory - Nearby the default location"
	case "categories":
		data = webUI.Directory.Categories()
		title = "Directory - Categories"
	case "config":
		data = webUI.Config.Redacted()
		title = "Application - Configuration"
	default:
		data = map[string]string{
			"error": "Please use one of the following: businesses, nearby, categories, config.",
		}
		title = "Choose a data type"
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeDebugData(w, title, data)
}
