package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RehabProfile struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	InmateID           string         `gorm:"column:inmate_id;not null;uniqueIndex" json:"inmate_id"`
	SuitabilityGroup   string         `gorm:"column:suitability_group;not null" json:"suitability_group"`
	RiskScore          float64        `gorm:"column:risk_score;not null" json:"risk_score"`
	MentalHealthStatus string         `gorm:"column:mental_health_status" json:"mental_health_status,omitempty"`
	Notes              string         `gorm:"column:notes" json:"notes,omitempty"`
	ProfileFeatures    datatypes.JSON `gorm:"type:jsonb;column:profile_features" json:"profile_features"`
	LastUpdated        time.Time      `gorm:"column:last_updated;not null" json:"last_updated"`
	CreatedAt          time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (RehabProfile) TableName() string { return "rehab_profile" }

// Features decodes the stored feature map.
func (p *RehabProfile) Features() map[string]interface{} {
	return DecodeFeatureMap(p.ProfileFeatures)
}
