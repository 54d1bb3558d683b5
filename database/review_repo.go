package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
)

type ReviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db}
}

// FindApproved returns approved reviews, newest first
func (r *ReviewRepo) FindApproved(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// FindAll returns every review including unapproved ones, newest first
func (r *ReviewRepo) FindAll(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// Add inserts a new review
func (r *ReviewRepo) Add(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// SetFlags updates the moderation flags of a review
func (r *ReviewRepo) SetFlags(ctx context.Context, id uuid.UUID, approved, featured *bool) error {
	updates := map[string]interface{}{}
	if approved != nil {
		updates["is_approved"] = *approved
	}
	if featured != nil {
		updates["is_featured"] = *featured
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a review by id
func (r *ReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Review{}, id)
}

// CountPending returns the number of reviews awaiting approval
func (r *ReviewRepo) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("is_approved = ?", false).Count(&n).Error
	return n, err
}
