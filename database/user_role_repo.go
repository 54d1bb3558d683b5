package database

import (
	"context"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRoleRepo struct {
	db *gorm.DB
}

func NewUserRoleRepo(db *gorm.DB) *UserRoleRepo {
	return &UserRoleRepo{db}
}

// HasRole reports whether userID holds role
func (r *UserRoleRepo) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&n).Error
	return n > 0, err
}

// FindAll returns every role assignment
func (r *UserRoleRepo) FindAll(ctx context.Context) ([]models.UserRole, error) {
	var roles []models.UserRole
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&roles).Error
	return roles, err
}

// Grant assigns role to userID. An existing assignment is reported as already existing.
func (r *UserRoleRepo) Grant(ctx context.Context, userID, role string) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserRole{UserID: userID, Role: role})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewAlreadyExists("user role")
	}
	return nil
}

// Revoke removes role from userID
func (r *UserRoleRepo) Revoke(ctx context.Context, userID, role string) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND role = ?", userID, role).Delete(&models.UserRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
