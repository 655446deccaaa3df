// FILE: internal/dto/stack_dto.go
// DTOs for saved stacks and project generation.
package dto

import (
	"time"

	"stack-navigator-be/pkg/advisor"

	"github.com/google/uuid"
)

type SaveStackRequest struct {
	Name           string                 `json:"name" validate:"required,max=100"`
	Notes          string                 `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Requirements   advisor.Requirements   `json:"requirements"`
	Recommendation advisor.Recommendation `json:"recommendation" validate:"required"`
}

type SavedStackResponse struct {
	Id             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	Notes          string                 `json:"notes,omitempty"`
	Requirements   advisor.Requirements   `json:"requirements"`
	Recommendation advisor.Recommendation `json:"recommendation"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type SavedStackListResponse struct {
	Stacks []SavedStackResponse `json:"stacks"`
	Total  int64                `json:"total"`
}

// CompareStacksRequest picks two saved stacks for the side-by-side view.
type CompareStacksRequest struct {
	FirstId  uuid.UUID `json:"first_id" validate:"required"`
	SecondId uuid.UUID `json:"second_id" validate:"required"`
}

type CompareStacksResponse struct {
	First  SavedStackResponse `json:"first"`
	Second SavedStackResponse `json:"second"`
}

// GenerateProjectRequest builds a starter project archive from a
// recommendation. Either a saved stack id or an inline recommendation.
type GenerateProjectRequest struct {
	ProjectName    string                  `json:"project_name" validate:"required,max=100"`
	SavedStackId   *uuid.UUID              `json:"saved_stack_id,omitempty"`
	Recommendation *advisor.Recommendation `json:"recommendation,omitempty"`
}

// GenerationCompletedMessage goes over the in-process pubsub from the
// generator to the consumer worker that persists the record.
type GenerationCompletedMessage struct {
	UserId      uuid.UUID              `json:"user_id"`
	ProjectName string                 `json:"project_name"`
	Stack       advisor.Recommendation `json:"stack"`
	ArchiveSize int                    `json:"archive_size"`
}

type GenerationRecordResponse struct {
	Id          uuid.UUID `json:"id"`
	ProjectName string    `json:"project_name"`
	ArchiveSize int       `json:"archive_size"`
	CreatedAt   time.Time `json:"created_at"`
}
