package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/roammate-api/internal/api/roammatev1/roammatev1connect"
	"github.com/FACorreiaa/roammate-api/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", CORSOrigins: []string{"http://localhost:3000"}},
		LLM: config.LLMConfig{
			ItineraryModel: "gemini-3-pro-preview",
			PlacesModel:    "gemini-3-pro-preview",
			ChatModel:      "gemini-3-flash-preview",
			Temperature:    0.7,
		},
		Session: config.SessionConfig{
			Store:      config.SessionStoreMemory,
			TTL:        time.Hour,
			CookieName: "roammate_session",
		},
		Observability: config.ObservabilityConfig{LogLevel: "info", MetricsEnabled: true},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps, err := InitDependencies(context.Background(), testConfig(), logger)
	require.NoError(t, err)
	t.Cleanup(deps.Cleanup)

	server := httptest.NewServer(SetupRouter(deps))
	t.Cleanup(server.Close)
	return server
}

func TestUtilityRoutes(t *testing.T) {
	server := newTestServer(t)

	for path, want := range map[string]string{"/health": "ok", "/ready": "ready"} {
		resp, err := server.Client().Get(server.URL + path)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, want, string(body), path)
		assert.Empty(t, resp.Cookies(), "utility routes must not start sessions")
	}

	resp, err := server.Client().Get(server.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPlannerRoute_StartsSession(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost,
		server.URL+roammatev1connect.PlannerServiceOpenChatProcedure, strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-42")

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "Hi! I'm RoamMate.")
	assert.Equal(t, "req-42", resp.Header.Get("X-Request-ID"))
	require.Len(t, resp.Cookies(), 1)
	assert.Equal(t, "roammate_session", resp.Cookies()[0].Name)
}

func TestPlannerRoute_MissingAPIKeyIsFailedPrecondition(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost,
		server.URL+roammatev1connect.PlannerServiceSubmitPreferencesProcedure,
		strings.NewReader(`{"destination":"Kyoto","duration":3,"budget":"Medium","interests":["History"]}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), `"code":"failed_precondition"`)
}

func TestExportRoute_NoItinerary(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.Client().Get(server.URL + "/itinerary.pdf")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+roammatev1connect.PlannerServiceGetSessionProcedure, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	// Browsers send the requested headers lower-cased and sorted.
	req.Header.Set("Access-Control-Request-Headers", "connect-protocol-version,content-type")

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "connect-protocol-version,content-type", resp.Header.Get("Access-Control-Allow-Headers"))
}
