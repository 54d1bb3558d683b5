package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
)

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db}
}

// FindAll returns every contact message, newest first
func (r *MessageRepo) FindAll(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error
	return messages, err
}

// Add inserts a new contact message
func (r *MessageRepo) Add(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// MarkRead sets the read flag of a message
func (r *MessageRepo) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {
	result := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("is_read", read)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a message by id
func (r *MessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ContactMessage{}, id)
}

// CountUnread returns the number of unread messages
func (r *MessageRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&n).Error
	return n, err
}
