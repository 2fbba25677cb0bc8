package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	traceHeader = "X-Trace-Id"
	traceLocal  = "trace_id"
)

// Tracing tags every request with a trace id, echoed in the response header
// and picked up by RouteLogger. A well-formed id supplied by the caller is
// kept so the frontend can correlate its own logs with ours.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(traceHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.NewString()
		}
		c.Locals(traceLocal, traceID)
		c.Set(traceHeader, traceID)
		return c.Next()
	}
}

// TraceID returns the request's trace id, empty when Tracing is not installed.
func TraceID(c *fiber.Ctx) string {
	id, _ := c.Locals(traceLocal).(string)
	return id
}
