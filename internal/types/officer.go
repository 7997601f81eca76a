package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Officer is a capacity-bounded staff member, optionally pinned to one
// station. Load moves through OfficerRepo.Reserve/Release only.
type Officer struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OfficerID         string         `gorm:"column:officer_id;not null;uniqueIndex" json:"officer_id"`
	Name              string         `gorm:"column:name;not null" json:"name"`
	Specializations   datatypes.JSON `gorm:"type:jsonb;column:specializations" json:"specializations"`
	AssignedStationID *uuid.UUID     `gorm:"type:uuid;column:assigned_station_id;index" json:"assigned_station_id,omitempty"`
	CurrentLoad       int            `gorm:"column:current_load;not null" json:"current_load"`
	MaxCapacity       int            `gorm:"column:max_capacity;not null" json:"max_capacity"`
	SuccessRate       *float64       `gorm:"column:success_rate" json:"success_rate,omitempty"`
	Active            bool           `gorm:"column:active;not null" json:"active"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Officer) TableName() string { return "officer" }

func (o *Officer) SpecializationList() []string {
	return DecodeStringList(o.Specializations)
}
