package mapper

import (
	"encoding/json"

	"stack-navigator-be/internal/entity"
	"stack-navigator-be/internal/model"

	"gorm.io/datatypes"
)

// StackMapper converts between advisor value types and their JSONB columns.
type StackMapper struct{}

func NewStackMapper() *StackMapper {
	return &StackMapper{}
}

func (m *StackMapper) SavedStackToEntity(s *model.SavedStack) *entity.SavedStack {
	if s == nil {
		return nil
	}
	e := &entity.SavedStack{
		Id:        s.Id,
		UserId:    s.UserId,
		Name:      s.Name,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	// Decode failures mean a past write was corrupt; surface empty values
	// rather than failing the read path.
	_ = json.Unmarshal(s.Requirements, &e.Requirements)
	_ = json.Unmarshal(s.Recommendation, &e.Recommendation)
	return e
}

func (m *StackMapper) SavedStackToModel(e *entity.SavedStack) *model.SavedStack {
	if e == nil {
		return nil
	}
	reqJSON, _ := json.Marshal(e.Requirements)
	recJSON, _ := json.Marshal(e.Recommendation)
	return &model.SavedStack{
		Id:             e.Id,
		UserId:         e.UserId,
		Name:           e.Name,
		Notes:          e.Notes,
		Requirements:   datatypes.JSON(reqJSON),
		Recommendation: datatypes.JSON(recJSON),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (m *StackMapper) GenerationToEntity(g *model.GenerationRecord) *entity.GenerationRecord {
	if g == nil {
		return nil
	}
	e := &entity.GenerationRecord{
		Id:          g.Id,
		UserId:      g.UserId,
		ProjectName: g.ProjectName,
		ArchiveSize: g.ArchiveSize,
		CreatedAt:   g.CreatedAt,
	}
	_ = json.Unmarshal(g.Stack, &e.Stack)
	return e
}

func (m *StackMapper) GenerationToModel(e *entity.GenerationRecord) *model.GenerationRecord {
	if e == nil {
		return nil
	}
	stackJSON, _ := json.Marshal(e.Stack)
	return &model.GenerationRecord{
		Id:          e.Id,
		UserId:      e.UserId,
		ProjectName: e.ProjectName,
		Stack:       datatypes.JSON(stackJSON),
		ArchiveSize: e.ArchiveSize,
		CreatedAt:   e.CreatedAt,
	}
}
