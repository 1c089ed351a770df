package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "yourcar/internal/log"
)

const friendlyMessage = "Something went wrong. Please try again."

// ErrorHandler logs err and renders a generic page. Client errors keep their
// status; anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	applog.Error(c, "server.error", err, nil)
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < 500 {
		code = fe.Code
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": friendlyMessage}); rerr != nil {
		return c.Status(code).SendString(friendlyMessage)
	}
	return nil
}

// NotFound is the catch-all route.
func NotFound(c *fiber.Ctx) error {
	return render(c.Status(fiber.StatusNotFound), "notfound", fiber.Map{"Message": "Page not found"})
}
