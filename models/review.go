package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a client testimonial. Only approved reviews are public or counted in aggregates.
type Review struct {
	ID            uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ReviewerName  string     `json:"reviewer_name" db:"reviewer_name" gorm:"column:reviewer_name;type:text;not null"`
	ReviewerEmail string     `json:"reviewer_email,omitempty" db:"reviewer_email" gorm:"column:reviewer_email;type:text"`
	Rating        int        `json:"rating" db:"rating" gorm:"column:rating;type:integer;not null;check:rating BETWEEN 1 AND 5"`
	ReviewText    string     `json:"review_text" db:"review_text" gorm:"column:review_text;type:text;not null"`
	IsApproved    bool       `json:"is_approved" db:"is_approved" gorm:"column:is_approved;not null;default:false;index:idx_review_approved"`
	IsFeatured    bool       `json:"is_featured" db:"is_featured" gorm:"column:is_featured;not null;default:false"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	ProjectID     *uuid.UUID `json:"project_id,omitempty" db:"project_id" gorm:"column:project_id;type:uuid;index:idx_review_project_id"`
	OrderID       *uuid.UUID `json:"order_id,omitempty" db:"order_id" gorm:"column:order_id;type:uuid"`
}

func (Review) TableName() string {
	return "reviews"
}
