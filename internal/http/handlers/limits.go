package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "catalogadmin/internal/log"
)

// RequestLimiter caps requests per client across the whole panel. The health
// probe is not counted.
func RequestLimiter(limit int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests. Please slow down.")
		},
	})
}
