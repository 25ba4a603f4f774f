package controller

import (
	"bytes"
	"context"

	"movie-match-be/internal/pkg/serverutils"
	"movie-match-be/internal/service"
	"movie-match-be/internal/view"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports whether a backing store is reachable.
type HealthCheck func(ctx context.Context) error

type IPageController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type pageController struct {
	service  service.ISessionService
	renderer *view.Renderer
	checks   map[string]HealthCheck
}

func NewPageController(service service.ISessionService, renderer *view.Renderer, checks map[string]HealthCheck) IPageController {
	return &pageController{
		service:  service,
		renderer: renderer,
		checks:   checks,
	}
}

func (c *pageController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Index)
	r.Get("/healthz", c.Health)
}

// Index serves the widget with the session's current view embedded, so a
// reload lands on the same panel and record.
func (c *pageController) Index(ctx *fiber.Ctx) error {
	state, err := c.service.State(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.renderer.Page(&buf, state); err != nil {
		return err
	}
	ctx.Type("html", "utf-8")
	return ctx.Send(buf.Bytes())
}

func (c *pageController) Health(ctx *fiber.Ctx) error {
	status := make(map[string]string, len(c.checks))
	healthy := true
	for name, check := range c.checks {
		if err := check(ctx.UserContext()); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(
			serverutils.ErrorResponseWithData(503, "Unhealthy", status),
		)
	}
	return ctx.JSON(serverutils.SuccessResponse("Healthy", status))
}
