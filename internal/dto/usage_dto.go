// FILE: internal/dto/usage_dto.go
// DTOs for usage limits and plan listing.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// UsageLimit represents a single limit status
type UsageLimit struct {
	Used     int        `json:"used"`
	Limit    int        `json:"limit"` // -1 = unlimited, 0 = disabled
	CanUse   bool       `json:"can_use"`
	ResetsAt *time.Time `json:"resets_at,omitempty"` // For daily limits
}

// StorageLimits for cumulative resources
type StorageLimits struct {
	SavedStacks UsageLimit `json:"saved_stacks"`
}

// DailyLimits for usage that resets at midnight
type DailyLimits struct {
	Generations UsageLimit `json:"generations"`
}

// UsageStatusResponse is returned by GET /api/user/usage-status
type UsageStatusResponse struct {
	Plan             PlanInfo      `json:"plan"`
	Storage          StorageLimits `json:"storage"`
	Daily            DailyLimits   `json:"daily"`
	UpgradeAvailable bool          `json:"upgrade_available"`
}

type PlanInfo struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// PlanWithFeaturesResponse is returned by GET /api/plans (public)
type PlanWithFeaturesResponse struct {
	Id            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Tagline       string        `json:"tagline"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	BillingPeriod string        `json:"billing_period"`
	IsMostPopular bool          `json:"is_most_popular"`
	Limits        PlanLimitsDTO `json:"limits"`
	Features      []FeatureDTO  `json:"features"`
}

type PlanLimitsDTO struct {
	MaxSavedStacks       int  `json:"max_saved_stacks"`        // -1 = unlimited
	GenerationDailyLimit int  `json:"generation_daily_limit"`  // 0 = disabled
	ComparisonEnabled    bool `json:"comparison_enabled"`
}

type FeatureDTO struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	Limit      int        `json:"limit"`
	Used       int        `json:"used"`
	ResetAfter *time.Time `json:"reset_after,omitempty"`
}

func (e *LimitExceededError) Error() string {
	return "plan limit exceeded"
}
