package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDKey is the fiber local holding the request ID.
	RequestIDKey = "request_id"
	// UnmatchedRoute labels requests that matched no registered route.
	UnmatchedRoute = "unmatched"

	routeLabelKey = "route_label"
)

// NotFound terminates requests no route handled. Mount it after every route.
func NotFound(c *fiber.Ctx) error {
	c.Locals(routeLabelKey, UnmatchedRoute)
	return fiber.ErrNotFound
}

// RouteLabel returns the route template of the request, never the raw path,
// so metric labels stay bounded.
func RouteLabel(c *fiber.Ctx) string {
	if label, ok := c.Locals(routeLabelKey).(string); ok {
		return label
	}
	return c.Route().Path
}

// RequestLogger assigns a request ID and logs one line per request.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)
		c.Locals(RequestIDKey, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		latency := time.Since(start)
		metrics.RecordRequest(RouteLabel(c), c.Method(), status, latency)

		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("route", RouteLabel(c)),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.IP()),
		)
		return err
	}
}
