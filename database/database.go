package database

import (
	"github.com/rpupo63/studio-site-backend/errs"
	"gorm.io/gorm"
)

type Database struct {
	db                 *gorm.DB
	contentSectionRepo *ContentSectionRepo
	projectRepo        *ProjectRepo
	reviewRepo         *ReviewRepo
	orderRepo          *OrderRepo
	messageRepo        *MessageRepo
	userRoleRepo       *UserRoleRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                 db,
		contentSectionRepo: NewContentSectionRepo(db),
		projectRepo:        NewProjectRepo(db),
		reviewRepo:         NewReviewRepo(db),
		orderRepo:          NewOrderRepo(db),
		messageRepo:        NewMessageRepo(db),
		userRoleRepo:       NewUserRoleRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ContentSectionRepo() *ContentSectionRepo {
	return d.contentSectionRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ReviewRepo() *ReviewRepo {
	return d.reviewRepo
}

func (d Database) OrderRepo() *OrderRepo {
	return d.orderRepo
}

func (d Database) MessageRepo() *MessageRepo {
	return d.messageRepo
}

func (d Database) UserRoleRepo() *UserRoleRepo {
	return d.userRoleRepo
}

// InstallTriggers attaches the change-notification trigger to every watched table.
func (d Database) InstallTriggers() error {
	if d.db == nil {
		return errs.BadRequest("database cannot be nil")
	}
	return InstallChangeTriggers(d.db, WatchedTables...)
}
