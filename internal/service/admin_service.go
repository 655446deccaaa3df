// FILE: internal/service/admin_service.go
package service

import (
	"context"
	"errors"
	"time"

	"stack-navigator-be/internal/dto"
	"stack-navigator-be/internal/entity"
	"stack-navigator-be/internal/pkg/logger"
	"stack-navigator-be/internal/repository/specification"
	"stack-navigator-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)

	// User Management
	GetAllUsers(ctx context.Context, req dto.AdminUserListRequest) ([]*dto.UserListResponse, error)
	UpdateUserStatus(ctx context.Context, userId uuid.UUID, req dto.UpdateUserStatusRequest) error
	DeleteUser(ctx context.Context, userId uuid.UUID) error

	// Quota oversight
	GetGenerationUsage(ctx context.Context, page, limit int) ([]*dto.GenerationUsageResponse, error)

	// Transaction Management
	GetTransactions(ctx context.Context, page, limit int) ([]*dto.TransactionListResponse, error)

	// Logs
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
}

type adminService struct {
	uowFactory     unitofwork.RepositoryFactory
	advisorService IAdvisorService
	planService    PlanService
	sysLogger      logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	advisorService IAdvisorService,
	planService PlanService,
	sysLogger logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		advisorService: advisorService,
		planService:    planService,
		sysLogger:      sysLogger,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	activeSubs, err := uow.SubscriptionRepository().CountSubscriptions(ctx,
		specification.Filter("status", entity.SubscriptionStatusActive))
	if err != nil {
		return nil, err
	}

	totalStacks, err := uow.StackRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	generationsToday, err := uow.GenerationRepository().Count(ctx,
		specification.CreatedSince{Since: midnight})
	if err != nil {
		return nil, err
	}

	growth, err := s.userGrowth(ctx, uow, 7)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		TotalUsers:          totalUsers,
		ActiveSubscriptions: activeSubs,
		TotalSavedStacks:    totalStacks,
		GenerationsToday:    generationsToday,
		LiveAdvisorSessions: s.advisorService.LiveSessionCount(),
		UserGrowth:          growth,
	}, nil
}

// userGrowth counts signups per day for the last n days. One query per day
// keeps the repository generic; n is small.
func (s *adminService) userGrowth(ctx context.Context, uow unitofwork.UnitOfWork, days int) ([]dto.GrowthDay, error) {
	now := time.Now()
	growth := make([]dto.GrowthDay, 0, days)

	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

		sinceCount, err := uow.UserRepository().Count(ctx, specification.CreatedSince{Since: dayStart})
		if err != nil {
			return nil, err
		}
		nextCount, err := uow.UserRepository().Count(ctx, specification.CreatedSince{Since: dayStart.AddDate(0, 0, 1)})
		if err != nil {
			return nil, err
		}

		growth = append(growth, dto.GrowthDay{
			Date:  dayStart.Format("2006-01-02"),
			Count: int(sinceCount - nextCount),
		})
	}

	return growth, nil
}

func (s *adminService) GetAllUsers(ctx context.Context, req dto.AdminUserListRequest) ([]*dto.UserListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if req.Search != "" {
		specs = append(specs, specification.SearchByNameOrEmail{Query: req.Search})
	}
	if req.Role != "" {
		specs = append(specs, specification.Filter("role", req.Role))
	}
	if req.Status != "" {
		specs = append(specs, specification.Filter("status", req.Status))
	}

	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UserListResponse, 0, len(users))
	for _, u := range users {
		row := &dto.UserListResponse{
			Id:        u.Id,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      string(u.Role),
			Status:    string(u.Status),
			CreatedAt: u.CreatedAt,
		}
		if plan, err := s.planService.GetUserPlan(ctx, u.Id); err == nil && plan != nil {
			row.PlanName = plan.Name
		}
		result = append(result, row)
	}

	return result, nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, userId uuid.UUID, req dto.UpdateUserStatusRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	if user.Role == entity.UserRoleAdmin {
		return errors.New("cannot change status of an admin account")
	}

	user.Status = entity.UserStatus(req.Status)
	user.UpdatedAt = time.Now()

	s.sysLogger.Info("Admin", "User status changed", map[string]interface{}{
		"user_id": userId.String(),
		"status":  req.Status,
		"reason":  req.Reason,
	})

	return uow.UserRepository().Update(ctx, user)
}

func (s *adminService) DeleteUser(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	if user.Role == entity.UserRoleAdmin {
		return errors.New("cannot delete an admin account")
	}

	return uow.UserRepository().Delete(ctx, userId)
}

func (s *adminService) GetGenerationUsage(ctx context.Context, page, limit int) ([]*dto.GenerationUsageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, err := uow.UserRepository().FindAll(ctx,
		specification.OrderBy{Field: "generation_daily_usage", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GenerationUsageResponse, 0, len(users))
	for _, u := range users {
		plan, err := s.planService.GetUserPlan(ctx, u.Id)
		if err != nil {
			return nil, err
		}

		remaining := plan.GenerationDailyLimit - u.GenerationDailyUsage
		if plan.GenerationDailyLimit < 0 {
			remaining = -1
		} else if remaining < 0 {
			remaining = 0
		}

		result = append(result, &dto.GenerationUsageResponse{
			UserId:                   u.Id,
			Email:                    u.Email,
			FullName:                 u.FullName,
			PlanName:                 plan.Name,
			GenerationDailyUsage:     u.GenerationDailyUsage,
			GenerationDailyLimit:     plan.GenerationDailyLimit,
			GenerationDailyRemaining: remaining,
			GenerationUsageLastReset: u.GenerationUsageLastReset,
		})
	}

	return result, nil
}

func (s *adminService) GetTransactions(ctx context.Context, page, limit int) ([]*dto.TransactionListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TransactionListResponse, 0, len(subs))
	for _, sub := range subs {
		row := &dto.TransactionListResponse{
			Id:              sub.Id,
			UserId:          sub.UserId,
			Status:          string(sub.Status),
			PaymentStatus:   string(sub.PaymentStatus),
			TransactionDate: sub.CreatedAt,
			MidtransOrderId: sub.MidtransTransactionId,
		}

		if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: sub.UserId}); err == nil && user != nil {
			row.UserEmail = user.Email
		}
		if plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId}); err == nil && plan != nil {
			row.PlanName = plan.Name
			row.Amount = plan.Price + (plan.Price * plan.TaxRate)
		}

		result = append(result, row)
	}

	return result, nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, err := s.sysLogger.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.LogListResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, &dto.LogListResponse{
			Id:        e.Id,
			Level:     e.Level,
			Message:   e.Message,
			Module:    e.Module,
			Timestamp: e.Timestamp,
			Details:   e.Details,
		})
	}

	return result, nil
}
