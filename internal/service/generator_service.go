// FILE: internal/service/generator_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"

	"stack-navigator-be/internal/dto"
	"stack-navigator-be/internal/repository/specification"
	"stack-navigator-be/internal/repository/unitofwork"
	"stack-navigator-be/pkg/advisor"
	"stack-navigator-be/pkg/generator"

	"github.com/google/uuid"
)

// GeneratedArchive is the zip plus the filename the download should carry.
type GeneratedArchive struct {
	FileName string
	Data     []byte
}

type IGeneratorService interface {
	GenerateProject(ctx context.Context, userId uuid.UUID, req *dto.GenerateProjectRequest) (*GeneratedArchive, error)
	ListGenerations(ctx context.Context, userId uuid.UUID) ([]dto.GenerationRecordResponse, error)
}

type generatorService struct {
	uowFactory       unitofwork.RepositoryFactory
	planService      PlanService
	publisherService IPublisherService
	gen              *generator.Generator
}

func NewGeneratorService(
	uowFactory unitofwork.RepositoryFactory,
	planService PlanService,
	publisherService IPublisherService,
) (IGeneratorService, error) {
	gen, err := generator.New()
	if err != nil {
		return nil, err
	}
	return &generatorService{
		uowFactory:       uowFactory,
		planService:      planService,
		publisherService: publisherService,
		gen:              gen,
	}, nil
}

func (s *generatorService) GenerateProject(ctx context.Context, userId uuid.UUID, req *dto.GenerateProjectRequest) (*GeneratedArchive, error) {
	// Quota check before doing any work
	if err := s.planService.CheckCanGenerate(ctx, userId); err != nil {
		return nil, err
	}

	rec, err := s.resolveRecommendation(ctx, userId, req)
	if err != nil {
		return nil, err
	}

	project, err := generator.BuildProject(req.ProjectName, rec)
	if err != nil {
		return nil, err
	}

	archive, err := s.gen.Archive(project)
	if err != nil {
		return nil, err
	}

	// Consume quota only after a successful build
	if err := s.planService.ConsumeGeneration(ctx, userId); err != nil {
		return nil, err
	}

	// Record keeping and notification happen off the request path
	payload, _ := json.Marshal(dto.GenerationCompletedMessage{
		UserId:      userId,
		ProjectName: req.ProjectName,
		Stack:       *rec,
		ArchiveSize: len(archive),
	})
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	return &GeneratedArchive{
		FileName: generator.Slugify(req.ProjectName) + ".zip",
		Data:     archive,
	}, nil
}

func (s *generatorService) resolveRecommendation(ctx context.Context, userId uuid.UUID, req *dto.GenerateProjectRequest) (*advisor.Recommendation, error) {
	if req.SavedStackId != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		stack, err := uow.StackRepository().FindOne(ctx,
			specification.ByID{ID: *req.SavedStackId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if stack == nil {
			return nil, errors.New("stack not found")
		}
		return &stack.Recommendation, nil
	}

	if req.Recommendation == nil {
		return nil, errors.New("either saved_stack_id or recommendation is required")
	}
	return req.Recommendation, nil
}

func (s *generatorService) ListGenerations(ctx context.Context, userId uuid.UUID) ([]dto.GenerationRecordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.GenerationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.GenerationRecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, dto.GenerationRecordResponse{
			Id:          r.Id,
			ProjectName: r.ProjectName,
			ArchiveSize: r.ArchiveSize,
			CreatedAt:   r.CreatedAt,
		})
	}
	return resp, nil
}
