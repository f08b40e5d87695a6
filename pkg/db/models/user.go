package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/taketwocare/solecare-backend/pkg/enums"
)

// User is a dashboard staff account.
type User struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string          `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string          `gorm:"column:password_hash;not null" json:"-"`
	FullName     string          `gorm:"column:full_name;not null" json:"full_name"`
	Role         enums.StaffRole `gorm:"column:role;type:text;not null;default:'staff'" json:"role"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
