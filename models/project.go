package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Project is a portfolio entry.
type Project struct {
	ID           uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        string         `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Description  string         `json:"description" db:"description" gorm:"column:description;type:text;not null;default:''"`
	ImageURL     *string        `json:"image_url,omitempty" db:"image_url" gorm:"column:image_url;type:text"`
	Technologies pq.StringArray `json:"technologies" db:"technologies" gorm:"column:technologies;type:text[];not null;default:'{}'"`
	GithubURL    *string        `json:"github_url,omitempty" db:"github_url" gorm:"column:github_url;type:text"`
	DemoURL      *string        `json:"demo_url,omitempty" db:"demo_url" gorm:"column:demo_url;type:text"`
	Category     string         `json:"category" db:"category" gorm:"column:category;type:text;not null;default:''"`
	IsFeatured   bool           `json:"is_featured" db:"is_featured" gorm:"column:is_featured;not null;default:false"`
	SortOrder    int            `json:"sort_order" db:"sort_order" gorm:"column:sort_order;type:integer;not null;default:0"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectStats are derived at read time from approved reviews.
type ProjectStats struct {
	ReviewCount   int     `json:"review_count"`
	FiveStarCount int     `json:"five_star_count"`
	AverageRating float64 `json:"average_rating"`
}

// ProjectWithStats is a project augmented with its review aggregates.
type ProjectWithStats struct {
	Project
	ProjectStats
}
