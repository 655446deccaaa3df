// FILE: internal/service/advisor_service.go
// Service over the in-memory advisor session store and recommendation engine.
package service

import (
	"context"

	"stack-navigator-be/internal/dto"
	"stack-navigator-be/pkg/advisor"
	"stack-navigator-be/pkg/session"
)

// IAdvisorService mirrors the store's sentinel convention: a nil response
// with a nil error means "refused" (create) or "absent" (everything else).
// Controllers translate those to 429 and 404.
type IAdvisorService interface {
	CreateSession(ctx context.Context, clientIP string, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionResponse, error)
	UpdateSession(ctx context.Context, id string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, id string) bool
	SendMessage(ctx context.Context, id string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	LiveSessionCount() int
}

type advisorService struct {
	store  *session.Store
	engine *advisor.Engine
}

func NewAdvisorService(store *session.Store) IAdvisorService {
	return &advisorService{
		store:  store,
		engine: advisor.NewEngine(),
	}
}

func (s *advisorService) CreateSession(ctx context.Context, clientIP string, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	sess := s.store.Create(clientIP)
	if sess == nil {
		// Rate limited or at capacity with only live sessions
		return nil, nil
	}

	conv := sess.Conversation
	conv.Messages = append(conv.Messages, advisor.Message{
		Role:    advisor.RoleAssistant,
		Content: s.engine.Greeting(),
		SentAt:  sess.CreatedAt,
	})

	var projectName *string
	if req != nil && req.ProjectName != "" {
		projectName = &req.ProjectName
	}

	updated := s.store.Update(sess.ID, session.Update{
		Conversation: conv,
		ProjectName:  projectName,
	})
	if updated == nil {
		// Swept between create and first write; treat as refused
		return nil, nil
	}

	return toSessionResponse(updated), nil
}

func (s *advisorService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	sess := s.store.Get(id)
	if sess == nil {
		return nil, nil
	}
	return toSessionResponse(sess), nil
}

func (s *advisorService) UpdateSession(ctx context.Context, id string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	sess := s.store.Update(id, session.Update{
		Email:       req.Email,
		ProjectName: req.ProjectName,
	})
	if sess == nil {
		return nil, nil
	}
	return toSessionResponse(sess), nil
}

func (s *advisorService) DeleteSession(ctx context.Context, id string) bool {
	return s.store.Delete(id)
}

func (s *advisorService) SendMessage(ctx context.Context, id string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	sess := s.store.Get(id)
	if sess == nil {
		return nil, nil
	}

	conv := sess.Conversation
	s.engine.Advance(conv, req.Content)

	updated := s.store.Update(id, session.Update{Conversation: conv})
	if updated == nil {
		return nil, nil
	}

	return &dto.SendMessageResponse{
		Reply:          conv.Messages[len(conv.Messages)-1],
		Phase:          conv.Phase,
		Recommendation: conv.Recommendation,
	}, nil
}

func (s *advisorService) LiveSessionCount() int {
	return s.store.Len()
}

func toSessionResponse(sess *session.Session) *dto.SessionResponse {
	conv := sess.Conversation
	return &dto.SessionResponse{
		Id:             sess.ID,
		Phase:          conv.Phase,
		Messages:       conv.Messages,
		Requirements:   conv.Requirements,
		Recommendation: conv.Recommendation,
		Email:          sess.Email,
		ProjectName:    sess.ProjectName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
	}
}
