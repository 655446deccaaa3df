// FILE: internal/controller/stack_controller.go
package controller

import (
	"errors"

	"stack-navigator-be/internal/dto"
	"stack-navigator-be/internal/pkg/serverutils"
	"stack-navigator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IStackController interface {
	RegisterRoutes(r fiber.Router)
	SaveStack(ctx *fiber.Ctx) error
	ListStacks(ctx *fiber.Ctx) error
	GetStack(ctx *fiber.Ctx) error
	DeleteStack(ctx *fiber.Ctx) error
	CompareStacks(ctx *fiber.Ctx) error
}

type stackController struct {
	stackService service.IStackService
}

func NewStackController(stackService service.IStackService) IStackController {
	return &stackController{stackService: stackService}
}

func (c *stackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/stacks")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.SaveStack)
	h.Get("/", c.ListStacks)
	h.Post("/compare", c.CompareStacks)
	h.Get("/:id", c.GetStack)
	h.Delete("/:id", c.DeleteStack)
}

// limitExceededResponse renders plan limit violations as 429 with the
// usage numbers so the frontend can show an upgrade prompt.
func limitExceededResponse(ctx *fiber.Ctx, limitErr *dto.LimitExceededError) error {
	return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"success":     false,
		"message":     limitErr.Error(),
		"limit":       limitErr.Limit,
		"used":        limitErr.Used,
		"reset_after": limitErr.ResetAfter,
	})
}

func (c *stackController) SaveStack(ctx *fiber.Ctx) error {
	var req dto.SaveStackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.stackService.SaveStack(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return limitExceededResponse(ctx, limitErr)
		}
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success save stack", res))
}

func (c *stackController) ListStacks(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.stackService.ListStacks(ctx.Context(), currentUserId(ctx), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get stacks", res))
}

func (c *stackController) GetStack(ctx *fiber.Ctx) error {
	stackId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid stack id")
	}

	res, err := c.stackService.GetStack(ctx.Context(), currentUserId(ctx), stackId)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).
			JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "stack not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get stack", res))
}

func (c *stackController) DeleteStack(ctx *fiber.Ctx) error {
	stackId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid stack id")
	}

	if err := c.stackService.DeleteStack(ctx.Context(), currentUserId(ctx), stackId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete stack", nil))
}

func (c *stackController) CompareStacks(ctx *fiber.Ctx) error {
	var req dto.CompareStacksRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.stackService.CompareStacks(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return limitExceededResponse(ctx, limitErr)
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success compare stacks", res))
}
