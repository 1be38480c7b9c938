package restapi

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Routes returns the API handler with the full middleware chain applied.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(api.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		api.serverErrorResponse(w, r, fmt.Errorf("panic: %v", v), "Internal server error")
	}

	router.HandlerFunc(http.MethodGet, "/api/test", api.testHandler)
	router.HandlerFunc(http.MethodGet, "/api/health", api.healthHandler)

	router.HandlerFunc(http.MethodGet, "/api/businesses", api.listBusinessesHandler)
	router.HandlerFunc(http.MethodPost, "/api/businesses", api.createBusinessHandler)
	router.HandlerFunc(http.MethodGet, "/api/businesses/:id", api.businessHandler)

	router.HandlerFunc(http.MethodGet, "/api/nearby", api.nearbyHandler)
	router.HandlerFunc(http.MethodGet, "/api/featured", api.featuredHandler)
	router.HandlerFunc(http.MethodGet, "/api/categories", api.categoriesHandler)

	var handler http.Handler = router
	handler = NewCompressionMiddleware(DefaultCompressionConfig())(handler)
	handler = api.rateLimiter.Handler(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger, api.Config.TrustProxy)(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}
