// FILE: internal/service/plan_service.go
// Service for plan management and usage limit checking
package service

import (
	"context"
	"time"

	"stack-navigator-be/internal/dto"
	"stack-navigator-be/internal/entity"
	"stack-navigator-be/internal/repository/memory"
	"stack-navigator-be/internal/repository/specification"
	"stack-navigator-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type PlanService interface {
	// Public
	GetAllActivePlansWithFeatures(ctx context.Context) ([]*dto.PlanWithFeaturesResponse, error)

	// User
	GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error)
	GetUserPlan(ctx context.Context, userId uuid.UUID) (*entity.SubscriptionPlan, error)
	CheckCanSaveStack(ctx context.Context, userId uuid.UUID) error
	CheckCanGenerate(ctx context.Context, userId uuid.UUID) error
	ConsumeGeneration(ctx context.Context, userId uuid.UUID) error
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	planCache  *memory.PlanCache
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, planCache *memory.PlanCache) PlanService {
	return &planService{
		uowFactory: uowFactory,
		planCache:  planCache,
	}
}

// GetAllActivePlansWithFeatures returns all active plans with their features
// for the pricing page. Results come from the in-memory cache when warm.
func (s *planService) GetAllActivePlansWithFeatures(ctx context.Context) ([]*dto.PlanWithFeaturesResponse, error) {
	plans, ok := s.planCache.GetAll()
	if !ok {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		plans, err = uow.SubscriptionRepository().FindAllPlans(ctx,
			specification.OrderBy{Field: "sort_order"})
		if err != nil {
			return nil, err
		}
		s.planCache.SaveAll(plans)
	}

	var result []*dto.PlanWithFeaturesResponse
	for _, plan := range plans {
		if !plan.IsActive {
			continue
		}

		featureDTOs := make([]dto.FeatureDTO, 0, len(plan.Features))
		for _, f := range plan.Features {
			featureDTOs = append(featureDTOs, dto.FeatureDTO{
				Key:  f.Key,
				Name: f.Name,
			})
		}

		result = append(result, &dto.PlanWithFeaturesResponse{
			Id:            plan.Id,
			Name:          plan.Name,
			Slug:          plan.Slug,
			Tagline:       plan.Tagline,
			Description:   plan.Description,
			Price:         plan.Price,
			BillingPeriod: string(plan.BillingPeriod),
			IsMostPopular: plan.IsMostPopular,
			Limits: dto.PlanLimitsDTO{
				MaxSavedStacks:       plan.MaxSavedStacks,
				GenerationDailyLimit: plan.GenerationDailyLimit,
				ComparisonEnabled:    plan.ComparisonEnabled,
			},
			Features: featureDTOs,
		})
	}

	return result, nil
}

// GetUserUsageStatus returns current usage vs limits for a user
func (s *planService) GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}

	plan, err := s.getUserPlan(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	stackCount, err := uow.StackRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	if err := s.checkAndResetDailyUsage(ctx, uow, user); err != nil {
		return nil, err
	}

	// Daily limits reset at next midnight
	now := time.Now()
	resetTime := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

	return &dto.UsageStatusResponse{
		Plan: dto.PlanInfo{
			Id:   plan.Id,
			Name: plan.Name,
			Slug: plan.Slug,
		},
		Storage: dto.StorageLimits{
			SavedStacks: dto.UsageLimit{
				Used:   int(stackCount),
				Limit:  plan.MaxSavedStacks,
				CanUse: plan.MaxSavedStacks < 0 || int(stackCount) < plan.MaxSavedStacks,
			},
		},
		Daily: dto.DailyLimits{
			Generations: dto.UsageLimit{
				Used:     user.GenerationDailyUsage,
				Limit:    plan.GenerationDailyLimit,
				CanUse:   s.canUseLimit(user.GenerationDailyUsage, plan.GenerationDailyLimit),
				ResetsAt: &resetTime,
			},
		},
		UpgradeAvailable: plan.Slug == "free",
	}, nil
}

// checkAndResetDailyUsage zeroes the counter when the stored reset timestamp
// is from a previous calendar day.
func (s *planService) checkAndResetDailyUsage(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) error {
	now := time.Now()
	lastReset := user.GenerationUsageLastReset

	if now.Year() != lastReset.Year() || now.Month() != lastReset.Month() || now.Day() != lastReset.Day() {
		user.GenerationDailyUsage = 0
		user.GenerationUsageLastReset = now

		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

// CheckCanSaveStack checks the cumulative saved stack limit.
func (s *planService) CheckCanSaveStack(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.getUserPlan(ctx, uow, userId)
	if err != nil {
		return err
	}

	// -1 means unlimited
	if plan.MaxSavedStacks < 0 {
		return nil
	}

	count, err := uow.StackRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}

	if int(count) >= plan.MaxSavedStacks {
		return &dto.LimitExceededError{
			Limit: plan.MaxSavedStacks,
			Used:  int(count),
		}
	}

	return nil
}

// CheckCanGenerate checks the daily generation quota without consuming it.
func (s *planService) CheckCanGenerate(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}

	plan, err := s.getUserPlan(ctx, uow, userId)
	if err != nil {
		return err
	}

	if err := s.checkAndResetDailyUsage(ctx, uow, user); err != nil {
		return err
	}

	if !s.canUseLimit(user.GenerationDailyUsage, plan.GenerationDailyLimit) {
		now := time.Now()
		resetTime := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		return &dto.LimitExceededError{
			Limit:      plan.GenerationDailyLimit,
			Used:       user.GenerationDailyUsage,
			ResetAfter: &resetTime,
		}
	}

	return nil
}

// ConsumeGeneration burns one unit of the daily generation quota.
func (s *planService) ConsumeGeneration(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}

	if err := s.checkAndResetDailyUsage(ctx, uow, user); err != nil {
		return err
	}

	user.GenerationDailyUsage++
	return uow.UserRepository().Update(ctx, user)
}

func (s *planService) GetUserPlan(ctx context.Context, userId uuid.UUID) (*entity.SubscriptionPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.getUserPlan(ctx, uow, userId)
}

// getUserPlan gets the user's current plan or falls back to the free tier.
func (s *planService) getUserPlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.SubscriptionPlan, error) {
	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var activeSub *entity.UserSubscription
	for _, sub := range subs {
		// Active, or canceled but still inside the paid period (access retained)
		if sub.Status == entity.SubscriptionStatusActive && sub.CurrentPeriodEnd.After(time.Now()) {
			activeSub = sub
			break
		}
		if sub.Status == entity.SubscriptionStatusCanceled && sub.CurrentPeriodEnd.After(time.Now()) {
			activeSub = sub
			break
		}
		if sub.PaymentStatus == entity.PaymentStatusPaid && sub.CurrentPeriodEnd.After(time.Now()) {
			activeSub = sub
			break
		}
	}

	if activeSub != nil {
		if plan, ok := s.planCache.GetByID(activeSub.PlanId.String()); ok {
			return plan, nil
		}
		plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: activeSub.PlanId})
		if err != nil {
			return nil, err
		}
		if plan != nil {
			return plan, nil
		}
	}

	// Default free plan limits
	return &entity.SubscriptionPlan{
		Name:                 "Free Plan",
		Slug:                 "free",
		MaxSavedStacks:       3,
		GenerationDailyLimit: 1,
		ComparisonEnabled:    false,
	}, nil
}

// canUseLimit reports whether usage is within limit. Negative = unlimited.
func (s *planService) canUseLimit(used int, limit int) bool {
	if limit < 0 {
		return true
	}
	return used < limit
}
