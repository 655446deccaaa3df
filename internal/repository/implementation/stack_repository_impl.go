package implementation

import (
	"context"
	"errors"

	"stack-navigator-be/internal/entity"
	"stack-navigator-be/internal/mapper"
	"stack-navigator-be/internal/model"
	"stack-navigator-be/internal/repository/contract"
	"stack-navigator-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StackMapper
}

func NewStackRepository(db *gorm.DB) contract.StackRepository {
	return &StackRepositoryImpl{
		db:     db,
		mapper: mapper.NewStackMapper(),
	}
}

func (r *StackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StackRepositoryImpl) Create(ctx context.Context, stack *entity.SavedStack) error {
	m := r.mapper.SavedStackToModel(stack)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*stack = *r.mapper.SavedStackToEntity(m)
	return nil
}

func (r *StackRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SavedStack{}, id).Error
}

func (r *StackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SavedStack, error) {
	var m model.SavedStack
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SavedStackToEntity(&m), nil
}

func (r *StackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SavedStack, error) {
	var models []*model.SavedStack
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	stacks := make([]*entity.SavedStack, 0, len(models))
	for _, m := range models {
		stacks = append(stacks, r.mapper.SavedStackToEntity(m))
	}
	return stacks, nil
}

func (r *StackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SavedStack{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
