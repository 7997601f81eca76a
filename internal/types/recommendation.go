package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recommendation links an inmate to one program and, when assignment
// succeeded, one station and one officer. The program/station/officer links
// are immutable after creation; re-assignment means a new recommendation.
type Recommendation struct {
	ID                       uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	InmateID                 string               `gorm:"column:inmate_id;not null;index" json:"inmate_id"`
	ProgramID                uuid.UUID            `gorm:"type:uuid;column:program_id;not null" json:"program_id"`
	Program                  *Program             `gorm:"foreignKey:ProgramID;references:ID" json:"program,omitempty"`
	StationID                *uuid.UUID           `gorm:"type:uuid;column:station_id" json:"station_id,omitempty"`
	Station                  *Station             `gorm:"foreignKey:StationID;references:ID" json:"station,omitempty"`
	OfficerID                *uuid.UUID           `gorm:"type:uuid;column:officer_id" json:"officer_id,omitempty"`
	Officer                  *Officer             `gorm:"foreignKey:OfficerID;references:ID" json:"officer,omitempty"`
	RecommendedDurationWeeks int                  `gorm:"column:recommended_duration_weeks;not null" json:"recommended_duration_weeks"`
	ReasonExplainer          string               `gorm:"column:reason_explainer;type:text" json:"reason_explainer"`
	Confidence               float64              `gorm:"column:confidence;not null" json:"confidence"`
	Degraded                 bool                 `gorm:"column:degraded;not null" json:"degraded"`
	Status                   RecommendationStatus `gorm:"column:status;not null;index" json:"status"`
	StartDate                *time.Time           `gorm:"column:start_date" json:"start_date,omitempty"`
	ExpectedEndDate          *time.Time           `gorm:"column:expected_end_date" json:"expected_end_date,omitempty"`
	CreatedAt                time.Time            `gorm:"not null" json:"created_at"`
	UpdatedAt                time.Time            `gorm:"not null" json:"updated_at"`
	DeletedAt                gorm.DeletedAt       `gorm:"index" json:"deleted_at,omitempty"`
}

func (Recommendation) TableName() string { return "recommendation" }
