package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"murmur/internal/config"
	"murmur/internal/models"
	"murmur/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubRunner struct {
	result *neo4j.EagerResult

	lastQuery       string
	lastParams      map[string]any
	lastCorrelation string
}

func (s *stubRunner) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	s.lastQuery = query
	s.lastParams = params
	s.lastCorrelation = observability.ExtractCorrelationID(ctx)
	if s.result != nil {
		return s.result, nil
	}
	return &neo4j.EagerResult{}, nil
}

func newTestApp(t *testing.T, runner *stubRunner) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		Port:      "0",
		JWTSecret: testSecret,
		Env:       "test",
	}
	srv := NewServerWithDeps(cfg, runner, nil)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app
}

func bearerToken(t *testing.T, uuid, username string, authorities ...string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      uuid,
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	if len(authorities) > 0 {
		list := make([]interface{}, 0, len(authorities))
		for _, a := range authorities {
			list = append(list, a)
		}
		claims["authorities"] = list
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAnonymousFeedDefaultsToHourWindow(t *testing.T) {
	runner := &stubRunner{}
	app := newTestApp(t, runner)

	req := httptest.NewRequest(http.MethodGet, "/api/feed/anonymous?window=FORTNIGHT", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The lenient parse silently defaults, so the window lower bound is
	// roughly an hour back and the upper bound is roughly now.
	since, ok := runner.lastParams["since"].(int64)
	require.True(t, ok, "since param missing: %#v", runner.lastParams)
	expected := time.Now().Add(-time.Hour).UnixMilli()
	assert.InDelta(t, expected, since, float64(5*time.Second.Milliseconds()))

	until, ok := runner.lastParams["until"].(int64)
	require.True(t, ok, "until param missing: %#v", runner.lastParams)
	assert.InDelta(t, time.Now().UnixMilli(), until, float64(5*time.Second.Milliseconds()))
}

func TestAnonymousFeedOptionalAuth(t *testing.T) {
	app := newTestApp(t, &stubRunner{})

	// A valid token resolves a principal but the feed stays public.
	req := httptest.NewRequest(http.MethodGet, "/api/feed/anonymous", nil)
	req.Header.Set("Authorization", bearerToken(t, "u1", "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A malformed token is an error even here; only absence is anonymous.
	req = httptest.NewRequest(http.MethodGet, "/api/feed/anonymous", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStoreContextCarriesRequestID(t *testing.T) {
	runner := &stubRunner{}
	cfg := &config.Config{
		Port:      "0",
		JWTSecret: testSecret,
		Env:       "test",
	}
	srv := NewServerWithDeps(cfg, runner, nil)

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	req := httptest.NewRequest(http.MethodGet, "/api/feed/anonymous", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, runner.lastCorrelation, "store query context should carry the request id")
	assert.Equal(t, resp.Header.Get("X-Request-ID"), runner.lastCorrelation)
}

func TestAnonymousFeedRejectsNegativeSkip(t *testing.T) {
	app := newTestApp(t, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/feed/anonymous?skip=-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPostNotFound(t *testing.T) {
	app := newTestApp(t, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, models.CodeNotFound, parsed["code"])
}

func TestHomeFeedRequiresAuth(t *testing.T) {
	app := newTestApp(t, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/feed/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHomeFeedPopularityMode(t *testing.T) {
	runner := &stubRunner{}
	app := newTestApp(t, runner)

	req := httptest.NewRequest(http.MethodGet, "/api/feed/?rankingMode=POPULARITY", nil)
	req.Header.Set("Authorization", bearerToken(t, "u1", "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, runner.lastQuery, "ORDER BY score DESC")
}

func TestFollowSelfRejected(t *testing.T) {
	app := newTestApp(t, &stubRunner{})

	req := httptest.NewRequest(http.MethodPost, "/api/follows/u1", nil)
	req.Header.Set("Authorization", bearerToken(t, "u1", "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportListRequiresAdmin(t *testing.T) {
	app := newTestApp(t, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/", nil)
	req.Header.Set("Authorization", bearerToken(t, "u1", "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/reports/", nil)
	req.Header.Set("Authorization", bearerToken(t, "u1", "alice", "ROLE_ADMIN"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFileReportBadReason(t *testing.T) {
	app := newTestApp(t, &stubRunner{})

	payload, _ := json.Marshal(map[string]string{
		"post_uuid": "p1",
		"reason":    "RUDE",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/reports/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "u1", "alice"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPopularTagsWindowSubset(t *testing.T) {
	runner := &stubRunner{}
	app := newTestApp(t, runner)

	req := httptest.NewRequest(http.MethodGet, "/api/tags/popular?window=SIX_HOURS", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// SIX_HOURS is outside the tag subset and falls back to HOUR.
	since, ok := runner.lastParams["since"].(int64)
	require.True(t, ok, "since param missing: %#v", runner.lastParams)
	expected := time.Now().Add(-time.Hour).UnixMilli()
	assert.InDelta(t, expected, since, float64(5*time.Second.Milliseconds()))
}
