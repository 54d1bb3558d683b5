package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Section kinds driving the public page.
const (
	SectionSettings = "settings"
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionServices = "services"
	SectionContact  = "contact"
	SectionReviews  = "reviews"
)

// ContentSection is an admin-editable record driving one area of the public page.
// SectionType is a discriminator, not a unique key: the first row by sort order wins.
type ContentSection struct {
	ID          uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	SectionType string            `json:"section_type" db:"section_type" gorm:"column:section_type;type:text;not null;index:idx_content_section_type"`
	Title       *string           `json:"title,omitempty" db:"title" gorm:"column:title;type:text"`
	Subtitle    *string           `json:"subtitle,omitempty" db:"subtitle" gorm:"column:subtitle;type:text"`
	Content     *string           `json:"content,omitempty" db:"content" gorm:"column:content;type:text"`
	ImageURL    *string           `json:"image_url,omitempty" db:"image_url" gorm:"column:image_url;type:text"`
	IsActive    *bool             `json:"is_active" db:"is_active" gorm:"column:is_active;default:true"`
	SortOrder   int               `json:"sort_order" db:"sort_order" gorm:"column:sort_order;type:integer;not null;default:0"`
	Metadata    datatypes.JSONMap `json:"metadata" db:"metadata" gorm:"column:metadata;type:jsonb;not null;default:'{}'"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at" gorm:"column:updated_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (ContentSection) TableName() string {
	return "content_sections"
}

// Active reports whether the row is explicitly active. A null flag counts as inactive.
func (s ContentSection) Active() bool {
	return s.IsActive != nil && *s.IsActive
}
