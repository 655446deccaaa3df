package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Slug          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description   string    `gorm:"type:text"`
	Tagline       string    `gorm:"type:text"`
	Price         float64   `gorm:"type:decimal(10,2);not null"`
	TaxRate       float64   `gorm:"type:decimal(5,4);default:0"`
	BillingPeriod string    `gorm:"type:varchar(20);not null"`
	// Limits
	MaxSavedStacks       int `gorm:"default:3"`  // -1 = unlimited
	GenerationDailyLimit int `gorm:"default:1"`  // 0 = disabled, -1 = unlimited
	// Feature flags
	ComparisonEnabled bool `gorm:"default:false"`
	// Display settings
	IsMostPopular bool `gorm:"default:false"`
	IsActive      bool `gorm:"default:true"`
	SortOrder     int  `gorm:"default:0"`

	Features []*Feature `gorm:"many2many:subscription_plan_features;joinForeignKey:plan_id;joinReferences:feature_id"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type Feature struct {
	Id   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key  string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name string    `gorm:"type:varchar(255);not null"`
}

func (Feature) TableName() string {
	return "features"
}

type UserSubscription struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId                uuid.UUID `gorm:"type:uuid;not null;index"`
	Status                string    `gorm:"type:varchar(50);not null"`
	CurrentPeriodStart    time.Time `gorm:"not null"`
	CurrentPeriodEnd      time.Time `gorm:"not null"`
	PaymentStatus         string    `gorm:"type:varchar(50);not null"`
	MidtransTransactionId *string   `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
