package controller

import (
	"errors"

	"movie-match-be/internal/dto"
	"movie-match-be/internal/pkg/serverutils"
	"movie-match-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecommendController interface {
	RegisterRoutes(r fiber.Router)
	State(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	Next(ctx *fiber.Ctx) error
	Again(ctx *fiber.Ctx) error
	Explain(ctx *fiber.Ctx) error
}

type recommendController struct {
	service service.ISessionService
}

func NewRecommendController(service service.ISessionService) IRecommendController {
	return &recommendController{service: service}
}

func (c *recommendController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recommend/v1")
	h.Get("/state", c.State)
	h.Post("/submit", c.Submit)
	h.Post("/next", c.Next)
	h.Post("/again", c.Again)
	h.Post("/explain", c.Explain)
}

func (c *recommendController) State(ctx *fiber.Ctx) error {
	res, err := c.service.State(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Current view", res))
}

func (c *recommendController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitAnswersRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	// blank answers are reported in the view, not as a 400
	res, err := c.service.Submit(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return conflictOr(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Answers submitted", res))
}

func (c *recommendController) Next(ctx *fiber.Ctx) error {
	res, err := c.service.Next(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return conflictOr(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Next match", res))
}

func (c *recommendController) Again(ctx *fiber.Ctx) error {
	res, err := c.service.Again(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Back to questions", res))
}

func (c *recommendController) Explain(ctx *fiber.Ctx) error {
	var req dto.ExplainRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Explain(ctx.UserContext(), serverutils.SessionID(ctx), req.Generation)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Explanation", res))
}

func conflictOr(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrSubmissionInFlight) || errors.Is(err, service.ErrNextUnavailable) {
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	}
	return err
}
