package controller

import (
	"movie-match-be/internal/dto"
	"movie-match-be/internal/pkg/logger"
	"movie-match-be/internal/pkg/serverutils"
	"movie-match-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultLogLimit = 50

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Seed(ctx *fiber.Ctx) error
	Backfill(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	maintenance service.IMaintenanceService
	logs        logger.LogReader
	jwtSecret   string
}

func NewAdminController(maintenance service.IMaintenanceService, logs logger.LogReader, jwtSecret string) IAdminController {
	return &adminController{
		maintenance: maintenance,
		logs:        logs,
		jwtSecret:   jwtSecret,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.AdminJwtMiddleware(c.jwtSecret))

	h.Post("/seed", c.Seed)
	h.Post("/backfill", c.Backfill)
	h.Get("/logs", c.GetLogs)
}

// Seed runs in the request; the catalog is small enough for that.
func (c *adminController) Seed(ctx *fiber.Ctx) error {
	report, err := c.maintenance.SeedIfEmpty(ctx.UserContext(), nil)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Seed finished", report))
}

func (c *adminController) Backfill(ctx *fiber.Ctx) error {
	report, err := c.maintenance.BackfillMissingEmbeddings(ctx.UserContext(), nil)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Backfill finished", report))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	var query dto.GetLogsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}
	if query.Limit == 0 {
		query.Limit = defaultLogLimit
	}

	logs, err := c.logs.GetLogs(query.Level, query.Limit, query.Offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}
