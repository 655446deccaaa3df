package implementation

import (
	"context"

	"stack-navigator-be/internal/entity"
	"stack-navigator-be/internal/mapper"
	"stack-navigator-be/internal/model"
	"stack-navigator-be/internal/repository/contract"
	"stack-navigator-be/internal/repository/specification"

	"gorm.io/gorm"
)

type GenerationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StackMapper
}

func NewGenerationRepository(db *gorm.DB) contract.GenerationRepository {
	return &GenerationRepositoryImpl{
		db:     db,
		mapper: mapper.NewStackMapper(),
	}
}

func (r *GenerationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GenerationRepositoryImpl) Create(ctx context.Context, record *entity.GenerationRecord) error {
	m := r.mapper.GenerationToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.GenerationToEntity(m)
	return nil
}

func (r *GenerationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationRecord, error) {
	var models []*model.GenerationRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]*entity.GenerationRecord, 0, len(models))
	for _, m := range models {
		records = append(records, r.mapper.GenerationToEntity(m))
	}
	return records, nil
}

func (r *GenerationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GenerationRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
