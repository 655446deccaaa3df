package unitofwork

import (
	"context"

	"stack-navigator-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubscriptionRepository() contract.SubscriptionRepository
	StackRepository() contract.StackRepository
	GenerationRepository() contract.GenerationRepository
}
