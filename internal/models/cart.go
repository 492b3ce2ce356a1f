package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a customer's staging list of meal selections. Price and
// availableQty are snapshots taken when the line was written; reads refresh
// availableQty from live meal stock.
type Cart struct {
	ID         uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"customer_id"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primarykey" json:"-"`
	CartID       uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	MealID       uuid.UUID `gorm:"type:uuid;not null" json:"meal_id"`
	Name         string    `gorm:"size:255" json:"name"`
	Price        float64   `json:"price"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	AvailableQty int       `json:"available_qty"`
}
