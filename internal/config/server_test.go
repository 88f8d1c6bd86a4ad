package config

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"ProjectVision/pkg/yolo"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewServer_RequiresFiberAndLoggerAndHolder(t *testing.T) {
	_, err := NewServer()
	require.Error(t, err)

	_, err = NewServer(WithFiber(fiber.New()))
	require.Error(t, err)

	_, err = NewServer(WithFiber(fiber.New()), WithLogger(quietLogger()))
	require.Error(t, err)
}

func TestServer_HealthCheck(t *testing.T) {
	holder := yolo.NewHolder("models", yolo.LoadDetector)

	server, err := NewServer(
		WithFiber(fiber.New()),
		WithLogger(quietLogger()),
		WithValidator(NewValidator()),
		WithMiddleware(),
		WithModelHolder(holder),
		WithUtils(),
	)
	require.NoError(t, err)

	server.RegisterHandler()

	resp, err := server.engine.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEmpty(t, body["message"])
}
