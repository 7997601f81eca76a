package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Program struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string         `gorm:"column:name;not null" json:"name"`
	Type              ProgramType    `gorm:"column:type;not null;index" json:"type"`
	DurationWeeks     int            `gorm:"column:duration_weeks;not null" json:"duration_weeks"`
	RequiredSkills    datatypes.JSON `gorm:"type:jsonb;column:required_skills" json:"required_skills"`
	Capacity          int            `gorm:"column:capacity;not null" json:"capacity"`
	CurrentEnrollment int            `gorm:"column:current_enrollment;not null" json:"current_enrollment"`
	Description       string         `gorm:"column:description" json:"description,omitempty"`
	Active            bool           `gorm:"column:active;not null" json:"active"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Program) TableName() string { return "program" }
