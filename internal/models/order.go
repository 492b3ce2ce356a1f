package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusRejected  = "rejected"
	OrderStatusPreparing = "preparing"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ChefUpdatableStatuses are the targets a chef may set on an order. The
// check is by name only; the current status does not restrict the jump.
var ChefUpdatableStatuses = map[string]bool{
	OrderStatusAccepted:  true,
	OrderStatusPreparing: true,
	OrderStatusCompleted: true,
	OrderStatusRejected:  true,
}

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	CustomerID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer        *User       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ChefID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"chef_id"`
	Chef            *User       `gorm:"foreignKey:ChefID" json:"chef,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount"`
	Status          string      `gorm:"size:20;not null;default:'pending'" json:"status"`
	PreferredHour   int         `json:"preferred_hour"`
	PreferredMinute int         `json:"preferred_minute"`
	Reviewed        bool        `gorm:"not null;default:false" json:"reviewed"`
	Paid            bool        `gorm:"not null;default:false" json:"paid"`
}

// OrderItem lines are immutable after the order is created.
type OrderItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primarykey" json:"-"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	MealID   uuid.UUID `gorm:"type:uuid;not null" json:"meal_id"`
	Meal     *Meal     `gorm:"foreignKey:MealID" json:"meal,omitempty"`
	Quantity int       `gorm:"not null;check:quantity >= 1" json:"quantity"`
}
