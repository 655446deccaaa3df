package contract

import (
	"context"

	"stack-navigator-be/internal/entity"
	"stack-navigator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type StackRepository interface {
	Create(ctx context.Context, stack *entity.SavedStack) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SavedStack, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SavedStack, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type GenerationRepository interface {
	Create(ctx context.Context, record *entity.GenerationRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
