package restapi

import (
	"time"

	"communityconnect.org/internal/app"
)

// maxRequestBodyBytes caps the size of a JSON request body.
const maxRequestBodyBytes = 1 << 20

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second, app.Config.TrustProxy),
	}
}

// Close releases background resources held by the API.
func (api *RestAPI) Close() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
