package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a service request submitted from the public order form.
type Order struct {
	ID          uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ClientName  string      `json:"client_name" db:"client_name" gorm:"column:client_name;type:text;not null"`
	ClientEmail string      `json:"client_email" db:"client_email" gorm:"column:client_email;type:text;not null"`
	Phone       *string     `json:"phone,omitempty" db:"phone" gorm:"column:phone;type:text"`
	ServiceType string      `json:"service_type" db:"service_type" gorm:"column:service_type;type:text;not null"`
	Budget      *string     `json:"budget,omitempty" db:"budget" gorm:"column:budget;type:text"`
	Deadline    *time.Time  `json:"deadline,omitempty" db:"deadline" gorm:"column:deadline;type:date"`
	Description string      `json:"description" db:"description" gorm:"column:description;type:text;not null"`
	Status      OrderStatus `json:"status" db:"status" gorm:"column:status;type:text;not null;default:'new';index:idx_order_status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at" gorm:"column:updated_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Order) TableName() string {
	return "orders"
}
