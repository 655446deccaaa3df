// FILE: internal/dto/admin_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User Management ---

type AdminUserListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Role   string `query:"role"`
	Status string `query:"status"`
}

type UserListResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	PlanName  string    `json:"plan_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
	Reason string `json:"reason,omitempty"`
}

type GenerationUsageResponse struct {
	UserId                   uuid.UUID `json:"user_id"`
	Email                    string    `json:"email"`
	FullName                 string    `json:"full_name"`
	PlanName                 string    `json:"plan_name"`
	GenerationDailyUsage     int       `json:"generation_daily_usage"`
	GenerationDailyLimit     int       `json:"generation_daily_limit"`
	GenerationDailyRemaining int       `json:"generation_daily_remaining"`
	GenerationUsageLastReset time.Time `json:"generation_usage_last_reset"`
}

// --- Dashboard ---

type DashboardStatsResponse struct {
	TotalUsers          int64       `json:"total_users"`
	ActiveSubscriptions int64       `json:"active_subscriptions"`
	TotalSavedStacks    int64       `json:"total_saved_stacks"`
	GenerationsToday    int64       `json:"generations_today"`
	LiveAdvisorSessions int         `json:"live_advisor_sessions"`
	UserGrowth          []GrowthDay `json:"user_growth"`
}

type GrowthDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// --- Transactions ---

type TransactionListResponse struct {
	Id              uuid.UUID `json:"id"`
	UserId          uuid.UUID `json:"user_id"`
	UserEmail       string    `json:"user_email"`
	PlanName        string    `json:"plan_name"`
	Amount          float64   `json:"amount"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	TransactionDate time.Time `json:"transaction_date"`
	MidtransOrderId *string   `json:"midtrans_order_id"`
}

// --- System Logs ---

// Log IDs are MD5 hashes of file position, not UUIDs.
type LogListResponse struct {
	Id        string                 `json:"id"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Module    string                 `json:"module,omitempty"`
	Timestamp string                 `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
