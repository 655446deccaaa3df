// FILE: internal/controller/plan_controller.go
package controller

import (
	"stack-navigator-be/internal/pkg/serverutils"
	"stack-navigator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	ListPlans(ctx *fiber.Ctx) error
}

type planController struct {
	planService service.PlanService
}

func NewPlanController(planService service.PlanService) IPlanController {
	return &planController{planService: planService}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	// Public pricing endpoint, no auth
	r.Get("/plans", c.ListPlans)
}

func (c *planController) ListPlans(ctx *fiber.Ctx) error {
	res, err := c.planService.GetAllActivePlansWithFeatures(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get plans", res))
}
