package mapper

import (
	"stack-navigator-be/internal/entity"
	"stack-navigator-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	features := make([]entity.Feature, 0, len(p.Features))
	for _, f := range p.Features {
		if f == nil {
			continue
		}
		features = append(features, entity.Feature{Id: f.Id, Key: f.Key, Name: f.Name})
	}
	return &entity.SubscriptionPlan{
		Id:                   p.Id,
		Name:                 p.Name,
		Slug:                 p.Slug,
		Description:          p.Description,
		Tagline:              p.Tagline,
		Price:                p.Price,
		TaxRate:              p.TaxRate,
		BillingPeriod:        entity.BillingPeriod(p.BillingPeriod),
		MaxSavedStacks:       p.MaxSavedStacks,
		GenerationDailyLimit: p.GenerationDailyLimit,
		ComparisonEnabled:    p.ComparisonEnabled,
		IsMostPopular:        p.IsMostPopular,
		IsActive:             p.IsActive,
		SortOrder:            p.SortOrder,
		Features:             features,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	features := make([]*model.Feature, 0, len(p.Features))
	for _, f := range p.Features {
		features = append(features, &model.Feature{Id: f.Id, Key: f.Key, Name: f.Name})
	}
	return &model.SubscriptionPlan{
		Id:                   p.Id,
		Name:                 p.Name,
		Slug:                 p.Slug,
		Description:          p.Description,
		Tagline:              p.Tagline,
		Price:                p.Price,
		TaxRate:              p.TaxRate,
		BillingPeriod:        string(p.BillingPeriod),
		MaxSavedStacks:       p.MaxSavedStacks,
		GenerationDailyLimit: p.GenerationDailyLimit,
		ComparisonEnabled:    p.ComparisonEnabled,
		IsMostPopular:        p.IsMostPopular,
		IsActive:             p.IsActive,
		SortOrder:            p.SortOrder,
		Features:             features,
	}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                entity.SubscriptionStatus(s.Status),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		PaymentStatus:         entity.PaymentStatus(s.PaymentStatus),
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                string(s.Status),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		PaymentStatus:         string(s.PaymentStatus),
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}
