package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is immutable once created. One review per (order, customer, meal).
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_once" json:"customer_id"`
	Customer   *User     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ChefID     uuid.UUID `gorm:"type:uuid;not null;index" json:"chef_id"`
	MealID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_once" json:"meal_id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_once" json:"order_id"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
}
