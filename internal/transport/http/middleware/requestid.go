package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jack-T524/oms/pkg/mylogger"
)

// NewRequestIDMiddleware tags every request with a correlation id that the
// loggers pick up from the context.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()

		c.Set("X-Request-ID", id)
		c.SetUserContext(mylogger.WithRequestID(c.UserContext(), id))

		return c.Next()
	}
}
