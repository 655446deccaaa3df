package main

import (
	"log"
	"os"

	"stack-navigator-be/internal/model"
	"stack-navigator-be/pkg/database"

	"github.com/joho/godotenv"
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

	log.Println("Starting GORM Migration...")

	// Extensions first, gen_random_uuid needs pgcrypto on older Postgres
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := []interface{}{
		&model.User{},
		&model.PasswordResetToken{},
		&model.UserProvider{},
		&model.UserRefreshToken{},
		&model.Feature{},
		&model.SubscriptionPlan{},
		&model.UserSubscription{},
		&model.SavedStack{},
		&model.GenerationRecord{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// Reporting view used by the admin transactions screen
	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW user_payment_history AS
		 SELECT us.user_id, u.full_name, sp.name AS plan_name, sp.price, us.payment_status, us.midtrans_transaction_id, us.created_at AS payment_date
		 FROM user_subscriptions us
		 JOIN users u ON us.user_id = u.id
		 JOIN subscription_plans sp ON us.plan_id = sp.id
		 ORDER BY us.created_at DESC;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
