package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Inmate struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	InmateID      string         `gorm:"column:inmate_id;not null;uniqueIndex" json:"inmate_id"`
	FirstName     string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName      string         `gorm:"column:last_name;not null" json:"last_name"`
	Status        InmateStatus   `gorm:"column:status;not null;index" json:"status"`
	SecurityLevel string         `gorm:"column:security_level;index" json:"security_level,omitempty"`
	Zone          string         `gorm:"column:zone;index" json:"zone,omitempty"`
	CellBlock     string         `gorm:"column:cell_block" json:"cell_block,omitempty"`
	AdmissionDate *time.Time     `gorm:"column:admission_date" json:"admission_date,omitempty"`
	ReleaseDate   *time.Time     `gorm:"column:release_date" json:"release_date,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Inmate) TableName() string { return "inmate" }
