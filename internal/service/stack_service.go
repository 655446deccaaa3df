// FILE: internal/service/stack_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stack-navigator-be/internal/dto"
	"stack-navigator-be/internal/entity"
	"stack-navigator-be/internal/repository/specification"
	"stack-navigator-be/internal/repository/unitofwork"

	"stack-navigator-be/pkg/events"
	pktNats "stack-navigator-be/pkg/nats"

	"github.com/google/uuid"
)

type IStackService interface {
	SaveStack(ctx context.Context, userId uuid.UUID, req *dto.SaveStackRequest) (*dto.SavedStackResponse, error)
	GetStack(ctx context.Context, userId, stackId uuid.UUID) (*dto.SavedStackResponse, error)
	ListStacks(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.SavedStackListResponse, error)
	DeleteStack(ctx context.Context, userId, stackId uuid.UUID) error
	CompareStacks(ctx context.Context, userId uuid.UUID, req *dto.CompareStacksRequest) (*dto.CompareStacksResponse, error)
}

type stackService struct {
	uowFactory     unitofwork.RepositoryFactory
	planService    PlanService
	eventPublisher *pktNats.Publisher
}

func NewStackService(uowFactory unitofwork.RepositoryFactory, planService PlanService, eventPublisher *pktNats.Publisher) IStackService {
	return &stackService{
		uowFactory:     uowFactory,
		planService:    planService,
		eventPublisher: eventPublisher,
	}
}

func (s *stackService) SaveStack(ctx context.Context, userId uuid.UUID, req *dto.SaveStackRequest) (*dto.SavedStackResponse, error) {
	// Plan limit first; the error carries usage details for the 429 payload
	if err := s.planService.CheckCanSaveStack(ctx, userId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	stack := &entity.SavedStack{
		Id:             uuid.New(),
		UserId:         userId,
		Name:           req.Name,
		Notes:          req.Notes,
		Requirements:   req.Requirements,
		Recommendation: req.Recommendation,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := uow.StackRepository().Create(ctx, stack); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewStackSaved(userId.String(), stack.Id.String(), stack.Name)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish STACK_SAVED event: %v\n", err)
		}
	}

	return toSavedStackResponse(stack), nil
}

func (s *stackService) GetStack(ctx context.Context, userId, stackId uuid.UUID) (*dto.SavedStackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	stack, err := uow.StackRepository().FindOne(ctx,
		specification.ByID{ID: stackId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if stack == nil {
		return nil, nil
	}

	return toSavedStackResponse(stack), nil
}

func (s *stackService) ListStacks(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.SavedStackListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	total, err := uow.StackRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	stacks, err := uow.StackRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.SavedStackListResponse{
		Stacks: make([]dto.SavedStackResponse, 0, len(stacks)),
		Total:  total,
	}
	for _, stack := range stacks {
		resp.Stacks = append(resp.Stacks, *toSavedStackResponse(stack))
	}

	return resp, nil
}

func (s *stackService) DeleteStack(ctx context.Context, userId, stackId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	stack, err := uow.StackRepository().FindOne(ctx,
		specification.ByID{ID: stackId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if stack == nil {
		return errors.New("stack not found")
	}

	return uow.StackRepository().Delete(ctx, stackId)
}

func (s *stackService) CompareStacks(ctx context.Context, userId uuid.UUID, req *dto.CompareStacksRequest) (*dto.CompareStacksResponse, error) {
	// Comparison is a paid feature
	plan, err := s.planService.GetUserPlan(ctx, userId)
	if err != nil {
		return nil, err
	}
	if !plan.ComparisonEnabled {
		return nil, &dto.LimitExceededError{Limit: 0, Used: 0}
	}

	first, err := s.GetStack(ctx, userId, req.FirstId)
	if err != nil {
		return nil, err
	}
	second, err := s.GetStack(ctx, userId, req.SecondId)
	if err != nil {
		return nil, err
	}

	return &dto.CompareStacksResponse{
		First:  *first,
		Second: *second,
	}, nil
}

func toSavedStackResponse(stack *entity.SavedStack) *dto.SavedStackResponse {
	return &dto.SavedStackResponse{
		Id:             stack.Id,
		Name:           stack.Name,
		Notes:          stack.Notes,
		Requirements:   stack.Requirements,
		Recommendation: stack.Recommendation,
		CreatedAt:      stack.CreatedAt,
		UpdatedAt:      stack.UpdatedAt,
	}
}
