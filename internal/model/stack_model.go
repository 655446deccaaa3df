package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SavedStack struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Notes  string    `gorm:"type:text"`
	// JSONB snapshots of the advisor output; the schema of these blobs is
	// owned by pkg/advisor, the DB just stores them.
	Requirements   datatypes.JSON `gorm:"type:jsonb"`
	Recommendation datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (SavedStack) TableName() string {
	return "saved_stacks"
}

type GenerationRecord struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjectName string         `gorm:"type:varchar(255);not null"`
	Stack       datatypes.JSON `gorm:"type:jsonb;not null"`
	ArchiveSize int            `gorm:"default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
}

func (GenerationRecord) TableName() string {
	return "generation_records"
}
