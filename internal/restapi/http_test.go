package restapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communityconnect.org/directorydb"
	"communityconnect.org/internal/app"
	"communityconnect.org/internal/appconf"
	"communityconnect.org/internal/logging"
	"communityconnect.org/internal/models"
)

// createTestApi creates a RestAPI backed by an in-memory database holding
// the seed businesses.
func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithRateLimit(t, 1000)
}

func createTestApiWithRateLimit(t *testing.T, rateLimit int) *RestAPI {
	t.Helper()

	db, err := directorydb.NewClient(directorydb.NewConfig(directorydb.SQLite, ":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.SeedFromJSON(context.Background(), filepath.Join("..", "..", "data", "seeds", "businesses.json"))
	require.NoError(t, err)

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.RateLimit = rateLimit

	api := NewRestAPI(app.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), db))
	t.Cleanup(api.Close)
	return api
}

// serveApiAndRetrieveEndpoint runs a GET against a test server and returns
// the response together with its body.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// serveRequest runs r through the full handler chain without a network.
func serveRequest(api *RestAPI, r *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	api.Routes().ServeHTTP(recorder, r)
	return recorder
}

func postJSON(api *RestAPI, endpoint, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, endpoint, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serveRequest(api, req)
}

func decodeBusinesses(t *testing.T, body []byte) []models.Business {
	t.Helper()
	var businesses []models.Business
	require.NoError(t, json.Unmarshal(body, &businesses), "body: %s", body)
	return businesses
}

func decodeFieldErrors(t *testing.T, body []byte) map[string][]string {
	t.Helper()
	var resp models.FieldErrorsResponse
	require.NoError(t, json.Unmarshal(body, &resp), "body: %s", body)
	return resp.FieldErrors
}

func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp), "body: %s", body)
	return resp.Error
}

func businessIDs(businesses []models.Business) []int64 {
	ids := make([]int64, len(businesses))
	for i, b := range businesses {
		ids[i] = b.ID
	}
	return ids
}

func TestTestHandler(t *testing.T) {
	api := createTestApi(t)
	resp, body := serveApiAndRetrieveEndpoint(t, api, "/api/test")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var msg models.Message
	require.NoError(t, json.Unmarshal(body, &msg))
	assert.Equal(t, "Backend is working!", msg.Message)
}

func TestHealthHandler(t *testing.T) {
	api := createTestApi(t)
	resp, body := serveApiAndRetrieveEndpoint(t, api, "/api/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health models.Health
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 6, health.Businesses)
}

func TestHealthHandlerDatabaseUnavailable(t *testing.T) {
	api := createTestApi(t)
	require.NoError(t, api.DB.Close())

	resp, body := serveApiAndRetrieveEndpoint(t, api, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "Database unavailable", decodeError(t, body))
}

func TestUnknownRouteReturnsJSONNotFound(t *testing.T) {
	api := createTestApi(t)
	resp, body := serveApiAndRetrieveEndpoint(t, api, "/api/nothing-here")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", decodeError(t, body))
}

func TestMethodNotAllowed(t *testing.T) {
	api := createTestApi(t)
	req := httptest.NewRequest(http.MethodDelete, "/api/businesses/1", nil)
	rec := serveRequest(api, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decodeError(t, rec.Body.Bytes()))
}

func newRequest(method, endpoint, body string) *http.Request {
	return httptest.NewRequest(method, endpoint, strings.NewReader(body))
}
