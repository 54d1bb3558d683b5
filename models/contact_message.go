package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a note left through the public contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"column:name;type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"column:email;type:text;not null"`
	Subject   *string   `json:"subject,omitempty" db:"subject" gorm:"column:subject;type:text"`
	Message   string    `json:"message" db:"message" gorm:"column:message;type:text;not null"`
	IsRead    bool      `json:"is_read" db:"is_read" gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
