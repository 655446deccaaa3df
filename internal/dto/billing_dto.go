// FILE: internal/dto/billing_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// Order Summary DTO
type OrderSummaryResponse struct {
	PlanName      string  `json:"plan_name"`
	BillingPeriod string  `json:"billing_period"` // "monthly" | "yearly"
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	Currency      string  `json:"currency"`
}

type CheckoutRequest struct {
	PlanId    uuid.UUID `json:"plan_id" validate:"required"`
	FirstName string    `json:"first_name" validate:"required"`
	LastName  string    `json:"last_name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"omitempty"`
}

type CheckoutResponse struct {
	SubscriptionId  uuid.UUID `json:"subscription_id"`
	SnapRedirectUrl string    `json:"snap_redirect_url"`
	SnapToken       string    `json:"snap_token"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	// Signature validation fields
	SignatureKey string `json:"signature_key"`
	StatusCode   string `json:"status_code"`
	GrossAmount  string `json:"gross_amount"`
}

type SubscriptionStatusResponse struct {
	SubscriptionId     uuid.UUID  `json:"subscription_id"`
	PlanName           string     `json:"plan_name"`
	PlanSlug           string     `json:"plan_slug"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"payment_status"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
