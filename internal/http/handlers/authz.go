package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	applog "yourcar/internal/log"
	"yourcar/internal/schema"
)

// MutationGuard grants mutation rights to requests carrying a bearer token
// that matches tokenHash (bcrypt). An empty hash leaves mutations open.
func MutationGuard(tokenHash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenHash == "" {
			c.SetUserContext(schema.WithAdmin(c.UserContext()))
			return c.Next()
		}
		auth := c.Get(fiber.HeaderAuthorization)
		tok, found := strings.CutPrefix(auth, "Bearer ")
		if !found || tok == "" {
			return c.Next()
		}
		if bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(tok)) != nil {
			applog.Security(c, "auth.token.fail", nil)
			return c.Next()
		}
		c.SetUserContext(schema.WithAdmin(c.UserContext()))
		return c.Next()
	}
}
