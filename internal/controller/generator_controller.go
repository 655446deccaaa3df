// FILE: internal/controller/generator_controller.go
package controller

import (
	"errors"
	"fmt"

	"stack-navigator-be/internal/dto"
	"stack-navigator-be/internal/pkg/serverutils"
	"stack-navigator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGeneratorController interface {
	RegisterRoutes(r fiber.Router)
	Download(ctx *fiber.Ctx) error
	ListGenerations(ctx *fiber.Ctx) error
}

type generatorController struct {
	generatorService service.IGeneratorService
}

func NewGeneratorController(generatorService service.IGeneratorService) IGeneratorController {
	return &generatorController{generatorService: generatorService}
}

func (c *generatorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generator")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/download", c.Download)
	h.Get("/generations", c.ListGenerations)
}

// Download builds the starter project and streams the archive back in
// the same request. The zip is assembled in memory, it is a handful of
// source files rather than a full dependency tree.
func (c *generatorController) Download(ctx *fiber.Ctx) error {
	var req dto.GenerateProjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	archive, err := c.generatorService.GenerateProject(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return limitExceededResponse(ctx, limitErr)
		}
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/zip")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", archive.FileName))
	return ctx.Send(archive.Data)
}

func (c *generatorController) ListGenerations(ctx *fiber.Ctx) error {
	res, err := c.generatorService.ListGenerations(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get generations", res))
}
