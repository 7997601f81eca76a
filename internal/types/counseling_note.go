package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CounselingNote struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	InmateID     string         `gorm:"column:inmate_id;not null;index" json:"inmate_id"`
	CounselorID  string         `gorm:"column:counselor_id" json:"counselor_id,omitempty"`
	Text         string         `gorm:"column:text;type:text;not null" json:"text"`
	SessionScore *float64       `gorm:"column:session_score" json:"session_score,omitempty"`
	Summary      string         `gorm:"column:summary;type:text" json:"summary,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CounselingNote) TableName() string { return "counseling_note" }
