package main

import (
	"log"
	"os"

	"stack-navigator-be/internal/model"
	"stack-navigator-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding feature catalog...")
	features := seedFeatures(db)

	color.Cyan("Seeding subscription plans...")
	seedPlans(db, features)

	color.Green("✅ Seeding completed")
}

func seedFeatures(db *gorm.DB) map[string]*model.Feature {
	catalog := []model.Feature{
		{Key: "advisor_sessions", Name: "Guided Stack Advisor"},
		{Key: "saved_stacks", Name: "Saved Stacks"},
		{Key: "stack_comparison", Name: "Side by Side Comparison"},
		{Key: "project_generation", Name: "Starter Project Download"},
		{Key: "priority_support", Name: "Priority Support"},
	}

	byKey := make(map[string]*model.Feature, len(catalog))
	for i := range catalog {
		f := catalog[i]

		var existing model.Feature
		if err := db.Where("key = ?", f.Key).First(&existing).Error; err == nil {
			color.Yellow("Feature %q already exists, skipping", f.Key)
			byKey[f.Key] = &existing
			continue
		}

		if err := db.Create(&f).Error; err != nil {
			log.Fatalf("Error creating feature %q: %v", f.Key, err)
		}
		color.Green("Created feature: %s (%s)", f.Name, f.Key)
		byKey[f.Key] = &f
	}
	return byKey
}

func seedPlans(db *gorm.DB, features map[string]*model.Feature) {
	pick := func(keys ...string) []*model.Feature {
		out := make([]*model.Feature, 0, len(keys))
		for _, k := range keys {
			if f, ok := features[k]; ok {
				out = append(out, f)
			}
		}
		return out
	}

	plans := []model.SubscriptionPlan{
		{
			Name:                 "Free",
			Slug:                 "free",
			Description:          "Explore the advisor and keep a few stacks around.",
			Tagline:              "For trying things out",
			Price:                0,
			BillingPeriod:        "monthly",
			MaxSavedStacks:       3,
			GenerationDailyLimit: 1,
			ComparisonEnabled:    false,
			SortOrder:            1,
			Features:             pick("advisor_sessions", "saved_stacks"),
		},
		{
			Name:                 "Pro",
			Slug:                 "pro",
			Description:          "Unlimited stacks, comparisons and ten starter projects a day.",
			Tagline:              "For builders",
			Price:                49000,
			TaxRate:              0.11,
			BillingPeriod:        "monthly",
			MaxSavedStacks:       -1,
			GenerationDailyLimit: 10,
			ComparisonEnabled:    true,
			IsMostPopular:        true,
			SortOrder:            2,
			Features:             pick("advisor_sessions", "saved_stacks", "stack_comparison", "project_generation"),
		},
		{
			Name:                 "Team",
			Slug:                 "team",
			Description:          "Everything in Pro with unlimited generation and priority support.",
			Tagline:              "For teams shipping together",
			Price:                490000,
			TaxRate:              0.11,
			BillingPeriod:        "yearly",
			MaxSavedStacks:       -1,
			GenerationDailyLimit: -1,
			ComparisonEnabled:    true,
			SortOrder:            3,
			Features:             pick("advisor_sessions", "saved_stacks", "stack_comparison", "project_generation", "priority_support"),
		},
	}

	for i := range plans {
		p := plans[i]

		var existing model.SubscriptionPlan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			color.Yellow("Plan %q already exists, skipping", p.Slug)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("Error creating plan %q: %v", p.Slug, err)
		}
		color.Green("Created plan: %s (%s)", p.Name, p.Slug)
	}
}
