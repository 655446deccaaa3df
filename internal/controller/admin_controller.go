// FILE: internal/controller/admin_controller.go
package controller

import (
	"stack-navigator-be/internal/dto"
	"stack-navigator-be/internal/pkg/serverutils"
	"stack-navigator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	DashboardStats(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
	UpdateUserStatus(ctx *fiber.Ctx) error
	DeleteUser(ctx *fiber.Ctx) error
	GenerationUsage(ctx *fiber.Ctx) error
	Transactions(ctx *fiber.Ctx) error
	SystemLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{adminService: adminService}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminMiddleware)
	h.Get("/dashboard", c.DashboardStats)
	h.Get("/users", c.ListUsers)
	h.Put("/users/:id/status", c.UpdateUserStatus)
	h.Delete("/users/:id", c.DeleteUser)
	h.Get("/generation-usage", c.GenerationUsage)
	h.Get("/transactions", c.Transactions)
	h.Get("/logs", c.SystemLogs)
}

func (c *adminController) DashboardStats(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetDashboardStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard stats", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	var req dto.AdminUserListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query params")
	}

	res, err := c.adminService.GetAllUsers(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get users", res))
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.UpdateUserStatus(ctx.Context(), userId, req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success update user status", nil))
}

func (c *adminController) DeleteUser(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	if err := c.adminService.DeleteUser(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete user", nil))
}

func (c *adminController) GenerationUsage(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.adminService.GetGenerationUsage(ctx.Context(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get generation usage", res))
}

func (c *adminController) Transactions(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.adminService.GetTransactions(ctx.Context(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get transactions", res))
}

func (c *adminController) SystemLogs(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 50)
	level := ctx.Query("level")

	res, err := c.adminService.GetSystemLogs(ctx.Context(), page, limit, level)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get system logs", res))
}
