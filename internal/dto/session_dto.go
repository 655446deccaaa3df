// FILE: internal/dto/session_dto.go
// DTOs for the anonymous advisor session flow.
package dto

import (
	"time"

	"stack-navigator-be/pkg/advisor"
)

type CreateSessionRequest struct {
	ProjectName string `json:"project_name,omitempty" validate:"omitempty,max=100"`
}

type UpdateSessionRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	ProjectName *string `json:"project_name,omitempty" validate:"omitempty,max=100"`
}

type SessionResponse struct {
	Id             string                   `json:"id"`
	Phase          string                   `json:"phase"`
	Messages       []advisor.Message        `json:"messages"`
	Requirements   advisor.Requirements     `json:"requirements"`
	Recommendation *advisor.Recommendation  `json:"recommendation,omitempty"`
	Email          string                   `json:"email,omitempty"`
	ProjectName    string                   `json:"project_name,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	LastAccessedAt time.Time                `json:"last_accessed_at"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// SendMessageResponse returns only the assistant's reply plus the updated
// phase; the client already holds the rest of the transcript.
type SendMessageResponse struct {
	Reply          advisor.Message         `json:"reply"`
	Phase          string                  `json:"phase"`
	Recommendation *advisor.Recommendation `json:"recommendation,omitempty"`
}
