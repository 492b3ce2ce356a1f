package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the durable artifact of an event; websocket delivery is a
// best-effort hint on top of it.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Read      bool       `gorm:"not null;default:false" json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}
