// FILE: internal/entity/stack_entity.go
package entity

import (
	"time"

	"stack-navigator-be/pkg/advisor"

	"github.com/google/uuid"
)

// SavedStack is a recommendation a logged-in user chose to keep.
type SavedStack struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Name           string
	Notes          string
	Requirements   advisor.Requirements
	Recommendation advisor.Recommendation
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GenerationRecord is one starter-project download, kept for quota accounting
// and the admin dashboard.
type GenerationRecord struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	ProjectName string
	Stack       advisor.Recommendation
	ArchiveSize int
	CreatedAt   time.Time
}
