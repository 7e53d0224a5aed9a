package config

import (
	"ProjectBudget/pkg/validation"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerRequiresFiberAndLogger(t *testing.T) {
	_, err := NewServer()
	assert.EqualError(t, err, "fiber app is required")

	logger := logrus.New()
	cfg := validConfig()
	_, err = NewServer(WithFiber(NewFiber(logger, &cfg)))
	assert.EqualError(t, err, "logger is required")
}

func TestWithMiddlewareNeedsLogger(t *testing.T) {
	_, err := NewServer(WithMiddleware())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger must be initialized before middleware")
}

func TestWithDatabaseNeedsConfig(t *testing.T) {
	_, err := NewServer(WithDatabase())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config must be set before database")
}

func TestRegisteredRoutes(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := validConfig()

	server, err := NewServer(
		WithFiber(NewFiber(logger, &cfg)),
		WithLogger(logger),
		WithConfig(&cfg),
		WithValidator(validation.New()),
		WithMiddleware(),
		WithUtils(),
		WithBcryptUtils(),
	)
	require.NoError(t, err)

	server.RegisterHandler()
	server.mountRoutes()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{method: http.MethodGet, path: "/", status: http.StatusOK},
		{method: http.MethodPost, path: "/api/v1/budget", status: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/api/v1/budget/b1", status: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/api/v1/expenditures", status: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/api/v1/expenditures/today", status: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/api/v1/unknown", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := server.engine.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestNewFiberUsesConfig(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := validConfig()
	cfg.BodyLimit = 2048

	app := NewFiber(logger, &cfg)

	assert.Equal(t, 2048, app.Config().BodyLimit)
	assert.True(t, app.Config().StrictRouting)
}

func TestNewFiberRendersUnknownRoutesAsJSON(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := validConfig()

	app := NewFiber(logger, &cfg)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Cannot GET /missing", body["error"])
}
