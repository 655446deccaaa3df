package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"stack-navigator-be/internal/repository/unitofwork"
	"stack-navigator-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SubscriptionRepository())
	assert.NotNil(t, uow.StackRepository())
	assert.NotNil(t, uow.GenerationRepository())

	// Basic ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Counting touches the table, so this doubles as a schema check
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Subscription Repository", func(t *testing.T) {
		count, err := uow.SubscriptionRepository().CountSubscriptions(context.Background())
		assert.NoError(t, err)
		t.Logf("Subscription count: %d", count)
	})

	t.Run("Check Stack Repository", func(t *testing.T) {
		count, err := uow.StackRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Saved stack count: %d", count)
	})
}
