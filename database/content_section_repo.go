package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type ContentSectionRepo struct {
	db *gorm.DB
}

func NewContentSectionRepo(db *gorm.DB) *ContentSectionRepo {
	return &ContentSectionRepo{db}
}

// FindAllOrdered returns every content section ordered by sort_order ascending.
// It reads from the primary so a reload triggered by a change notification
// never sees a replica that has not caught up yet.
func (r *ContentSectionRepo) FindAllOrdered(ctx context.Context) ([]models.ContentSection, error) {
	var sections []models.ContentSection
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).Order("sort_order ASC").Find(&sections).Error
	return sections, err
}

// FindByID returns a content section by its ID
func (r *ContentSectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ContentSection, error) {
	var section models.ContentSection
	if err := r.db.WithContext(ctx).First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// Add inserts a new content section
func (r *ContentSectionRepo) Add(ctx context.Context, section *models.ContentSection) error {
	return r.db.WithContext(ctx).Create(section).Error
}

// Update saves every column of an existing content section
func (r *ContentSectionRepo) Update(ctx context.Context, section *models.ContentSection) error {
	return r.db.WithContext(ctx).Save(section).Error
}

// Delete removes a content section by id
func (r *ContentSectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ContentSection{}, id)
}

// deleteByID deletes one row and reports gorm.ErrRecordNotFound when nothing matched.
func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
