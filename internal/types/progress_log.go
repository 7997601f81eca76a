package types

import (
	"time"

	"github.com/google/uuid"
)

// ProgressLog is an append-only record; entries are never edited or deleted.
type ProgressLog struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InmateID           string          `gorm:"column:inmate_id;not null;index" json:"inmate_id"`
	RecommendationID   uuid.UUID       `gorm:"type:uuid;column:recommendation_id;not null;index" json:"recommendation_id"`
	Recommendation     *Recommendation `gorm:"foreignKey:RecommendationID;references:ID" json:"recommendation,omitempty"`
	Status             ProgressStatus  `gorm:"column:status;not null" json:"status"`
	ProgressPercentage *int            `gorm:"column:progress_percentage" json:"progress_percentage,omitempty"`
	Notes              string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
	RecordedBy         string          `gorm:"column:recorded_by" json:"recorded_by,omitempty"`
	LogDate            time.Time       `gorm:"column:log_date;not null" json:"log_date"`
	CreatedAt          time.Time       `gorm:"not null" json:"created_at"`
}

func (ProgressLog) TableName() string { return "progress_log" }
