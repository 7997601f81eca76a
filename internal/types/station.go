package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Station is a capacity-bounded rehabilitation facility. CurrentLoad only
// moves through StationRepo.Reserve/Release so 0 <= current_load <= capacity
// holds under concurrent assignment.
type Station struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string         `gorm:"column:name;not null" json:"name"`
	Location        string         `gorm:"column:location" json:"location,omitempty"`
	Zone            string         `gorm:"column:zone;index" json:"zone,omitempty"`
	Capacity        int            `gorm:"column:capacity;not null" json:"capacity"`
	CurrentLoad     int            `gorm:"column:current_load;not null" json:"current_load"`
	Specializations datatypes.JSON `gorm:"type:jsonb;column:specializations" json:"specializations"`
	SuccessRate     *float64       `gorm:"column:success_rate" json:"success_rate,omitempty"`
	Active          bool           `gorm:"column:active;not null" json:"active"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Station) TableName() string { return "station" }

func (s *Station) SpecializationList() []string {
	return DecodeStringList(s.Specializations)
}
