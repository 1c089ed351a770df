package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "yourcar/internal/log"
)

// GraphQLLimiter allows perMinute requests per client IP each minute and answers
// the rest with a GraphQL-shaped 429.
func GraphQLLimiter(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.graphql.hit", nil)
			return gqlFail(c, fiber.StatusTooManyRequests, "rate limit exceeded, retry soon")
		},
	})
}
