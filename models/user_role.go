package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// UserRole maps an identity-service user to an application role.
type UserRole struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID    string    `json:"user_id" db:"user_id" gorm:"column:user_id;type:text;not null;uniqueIndex:idx_user_role_unique"`
	Role      string    `json:"role" db:"role" gorm:"column:role;type:text;not null;uniqueIndex:idx_user_role_unique"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
