package contract

import (
	"context"

	"stack-navigator-be/internal/entity"
	"stack-navigator-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	// Plans
	FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error)
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)
	CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error

	// Subscriptions
	CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error
	UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error
	FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error)
	FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error)
	CountSubscriptions(ctx context.Context, specs ...specification.Specification) (int64, error)
}
