package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

const (
	CategoryVegetarian = "vegetarian"
	CategoryNonVeg     = "non-veg"
	CategoryVegan      = "vegan"
)

type Meal struct {
	ID              uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
	ChefID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"chef_id"`
	Chef            *User            `gorm:"foreignKey:ChefID" json:"chef,omitempty"`
	Name            string           `gorm:"size:255;not null" json:"name"`
	Description     string           `gorm:"type:text;not null" json:"description"`
	Price           float64          `gorm:"not null;check:price >= 0" json:"price"`
	Category        string           `gorm:"size:20;not null" json:"category"`
	Cuisine         string           `gorm:"size:100;not null" json:"cuisine"`
	Images          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	PreparationTime int              `gorm:"not null;check:preparation_time >= 1" json:"preparation_time"`
	Quantity        int              `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Availability    bool             `gorm:"not null;default:true" json:"availability"`
	AverageRating   float64          `gorm:"not null;default:0" json:"average_rating"`
}
