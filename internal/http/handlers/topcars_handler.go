package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "yourcar/internal/log"
	"yourcar/internal/topcars"
	"yourcar/internal/validate"
)

type TopCarsHandler struct {
	Cars    topcars.CarService
	Store   *topcars.Store
	Timeout time.Duration
}

// mount runs one fetch for this request. Failures are already logged by
// the view and rendered as the empty state.
func (h *TopCarsHandler) mount(c *fiber.Ctx) *topcars.View {
	rid, _ := c.Locals("requestid").(string)
	ctx := applog.WithRequestID(c.UserContext(), rid)
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	view := topcars.NewView(h.Cars, h.Store)
	_ = view.Mount(ctx)
	return view
}

// viewport prefers an explicit ?vw= width and falls back to a user agent guess.
func viewport(c *fiber.Ctx) int {
	if w, ok := validate.Viewport(c.Query("vw")); ok {
		return w
	}
	if strings.Contains(c.Get(fiber.HeaderUserAgent), "Mobi") {
		return topcars.MobileViewport
	}
	return topcars.DefaultViewport
}

// GET /
func (h *TopCarsHandler) Home(c *fiber.Ctx) error {
	width := viewport(c)
	snap := h.mount(c).Snapshot(width, validate.Page(c.Query("page")))
	return render(c, "home", fiber.Map{"View": snap, "Width": width})
}

// GET /api/v1/top-cars
func (h *TopCarsHandler) JSON(c *fiber.Ctx) error {
	snap := h.mount(c).Snapshot(viewport(c), validate.Page(c.Query("page")))
	return c.JSON(snap)
}
