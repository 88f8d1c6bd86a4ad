package middleware

import (
	"ProjectVision/pkg/log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggerConfig logs one line per request with latency and sizes. Image
// uploads are multipart and their bodies are never logged.
func LoggerConfig() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID, ok := c.Locals(RequestIDKey).(string)
		if !ok || requestID == "" {
			requestID = "unknown"
		}

		c.Locals("request_id", requestID)

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()

		if err != nil && status == fiber.StatusInternalServerError {
			return err
		}

		logFields := log.Fields{
			"request_id":    requestID,
			"method":        c.Method(),
			"path":          c.Path(),
			"status":        status,
			"latency_ms":    latency.Milliseconds(),
			"ip":            c.IP(),
			"request_size":  len(c.Request().Body()),
			"response_size": responseSize(c),
		}

		if status >= 500 {
			log.Error(logFields, "Server error")
		} else if status >= 400 {
			log.Warn(logFields, "Client error")
		} else {
			log.Info(logFields, "Success")
		}

		return err
	}
}

// Annotated images dominate detection responses; report their size
// without copying the body.
func responseSize(c *fiber.Ctx) int {
	if strings.HasPrefix(string(c.Response().Header.ContentType()), "application/json") {
		return len(c.Response().Body())
	}
	return c.Response().Header.ContentLength()
}
