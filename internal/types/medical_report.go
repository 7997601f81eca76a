package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MedicalReport struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	InmateID  string         `gorm:"column:inmate_id;not null;index" json:"inmate_id"`
	OfficerID string         `gorm:"column:officer_id" json:"officer_id,omitempty"`
	Vitals    datatypes.JSON `gorm:"type:jsonb;column:vitals" json:"vitals"`
	Diagnosis string         `gorm:"column:diagnosis" json:"diagnosis,omitempty"`
	Notes     string         `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MedicalReport) TableName() string { return "medical_report" }
