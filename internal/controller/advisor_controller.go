// FILE: internal/controller/advisor_controller.go
package controller

import (
	"stack-navigator-be/internal/dto"
	"stack-navigator-be/internal/pkg/serverutils"
	"stack-navigator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdvisorController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	UpdateSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type advisorController struct {
	advisorService service.IAdvisorService
}

func NewAdvisorController(advisorService service.IAdvisorService) IAdvisorController {
	return &advisorController{advisorService: advisorService}
}

// Advisor sessions are anonymous, abuse is contained by the per-IP
// limiter inside the session store rather than by auth.
func (c *advisorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/advisor")
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions/:id", c.GetSession)
	h.Put("/sessions/:id", c.UpdateSession)
	h.Delete("/sessions/:id", c.DeleteSession)
	h.Post("/sessions/:id/messages", c.SendMessage)
}

func (c *advisorController) CreateSession(ctx *fiber.Ctx) error {
	// Body is optional, a bare POST opens a session without a project name.
	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}
	}

	res, err := c.advisorService.CreateSession(ctx.Context(), ctx.IP(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		// Store refused: either the caller's IP is over the creation
		// rate limit or the store is at capacity.
		return ctx.Status(fiber.StatusTooManyRequests).
			JSON(serverutils.ErrorResponse(fiber.StatusTooManyRequests, "too many sessions, try again later"))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *advisorController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.advisorService.GetSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).
			JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "session not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *advisorController) UpdateSession(ctx *fiber.Ctx) error {
	var req dto.UpdateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisorService.UpdateSession(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).
			JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "session not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update session", res))
}

func (c *advisorController) DeleteSession(ctx *fiber.Ctx) error {
	if deleted := c.advisorService.DeleteSession(ctx.Context(), ctx.Params("id")); !deleted {
		return ctx.Status(fiber.StatusNotFound).
			JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "session not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *advisorController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisorService.SendMessage(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).
			JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "session not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}
