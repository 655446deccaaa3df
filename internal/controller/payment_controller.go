// FILE: internal/controller/payment_controller.go
package controller

import (
	"stack-navigator-be/internal/dto"
	"stack-navigator-be/internal/pkg/serverutils"
	"stack-navigator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	OrderSummary(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	HandleNotification(ctx *fiber.Ctx) error
	SubscriptionStatus(ctx *fiber.Ctx) error
	CancelSubscription(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{paymentService: paymentService}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments")
	// Midtrans posts here server to server, it carries its own signature
	// instead of a bearer token.
	h.Post("/notification", c.HandleNotification)

	auth := h.Group("", serverutils.JwtMiddleware)
	auth.Get("/order-summary/:planId", c.OrderSummary)
	auth.Post("/checkout", c.Checkout)
	auth.Get("/subscription", c.SubscriptionStatus)
	auth.Post("/subscription/cancel", c.CancelSubscription)
}

func (c *paymentController) OrderSummary(ctx *fiber.Ctx) error {
	planId, err := uuid.Parse(ctx.Params("planId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid plan id")
	}

	res, err := c.paymentService.GetOrderSummary(ctx.Context(), planId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get order summary", res))
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.paymentService.CreateSubscription(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create checkout", res))
}

func (c *paymentController) HandleNotification(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification body")
	}

	if err := c.paymentService.HandleNotification(ctx.Context(), &req); err != nil {
		return err
	}
	// Midtrans only cares about the status code, anything non-2xx gets retried.
	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}

func (c *paymentController) SubscriptionStatus(ctx *fiber.Ctx) error {
	res, err := c.paymentService.GetSubscriptionStatus(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get subscription status", res))
}

func (c *paymentController) CancelSubscription(ctx *fiber.Ctx) error {
	if err := c.paymentService.CancelSubscription(ctx.Context(), currentUserId(ctx)); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription canceled", nil))
}
