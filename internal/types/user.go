package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Password  string         `gorm:"column:password;not null" json:"-"`
	FirstName string         `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName  string         `gorm:"column:last_name" json:"last_name,omitempty"`
	Role      string         `gorm:"column:role;not null" json:"role"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "app_user" }
