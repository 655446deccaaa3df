package memory

import (
	"time"

	"stack-navigator-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const allPlansKey = "plans:all"

// PlanCache keeps subscription plans in memory so plan lookups on the
// hot paths (usage checks, checkout) skip the database.
type PlanCache struct {
	cache *cache.Cache
}

func NewPlanCache() *PlanCache {
	// Plans rarely change. Cache for 10 minutes, purge every 15.
	c := cache.New(10*time.Minute, 15*time.Minute)
	return &PlanCache{
		cache: c,
	}
}

func (p *PlanCache) SaveAll(plans []*entity.SubscriptionPlan) {
	p.cache.Set(allPlansKey, plans, cache.DefaultExpiration)
	for _, plan := range plans {
		p.cache.Set("plan:"+plan.Id.String(), plan, cache.DefaultExpiration)
		p.cache.Set("plan:slug:"+plan.Slug, plan, cache.DefaultExpiration)
	}
}

func (p *PlanCache) GetAll() ([]*entity.SubscriptionPlan, bool) {
	if x, found := p.cache.Get(allPlansKey); found {
		return x.([]*entity.SubscriptionPlan), true
	}
	return nil, false
}

func (p *PlanCache) GetByID(id string) (*entity.SubscriptionPlan, bool) {
	if x, found := p.cache.Get("plan:" + id); found {
		return x.(*entity.SubscriptionPlan), true
	}
	return nil, false
}

func (p *PlanCache) GetBySlug(slug string) (*entity.SubscriptionPlan, bool) {
	if x, found := p.cache.Get("plan:slug:" + slug); found {
		return x.(*entity.SubscriptionPlan), true
	}
	return nil, false
}

// Invalidate drops everything. Called after admin plan edits.
func (p *PlanCache) Invalidate() {
	p.cache.Flush()
}
