package webui

import "communityconnect.org/internal/app"

// WebUI serves development pages that inspect the directory state.
type WebUI struct {
	*app.Application
}

func New(application *app.Application) *WebUI {
	return &WebUI{Application: application}
}
