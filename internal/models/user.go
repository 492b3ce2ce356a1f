package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleChef     = "chef"
	RoleCustomer = "customer"
)

// Address is the embedded delivery/pickup address on a user account.
type Address struct {
	Line       string  `gorm:"size:255" json:"line"`
	City       string  `gorm:"size:100" json:"city"`
	State      string  `gorm:"size:100" json:"state"`
	PostalCode string  `gorm:"size:20" json:"postal_code"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// WorkingHours is a chef's daily accept-order window, minute granular.
// An all-zero value means the chef has not configured hours yet.
type WorkingHours struct {
	StartHour   int `json:"start_hour"`
	StartMinute int `json:"start_minute"`
	EndHour     int `json:"end_hour"`
	EndMinute   int `json:"end_minute"`
}

// Contains reports whether the given time of day falls inside the window,
// inclusive at both ends. The window does not span midnight.
func (w WorkingHours) Contains(hour, minute int) bool {
	t := hour*60 + minute
	return t >= w.StartHour*60+w.StartMinute && t <= w.EndHour*60+w.EndMinute
}

type User struct {
	ID                uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"-"`
	Name              string           `gorm:"not null" json:"name"`
	Email             string           `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string           `gorm:"not null" json:"-"`
	Role              string           `gorm:"size:20;not null" json:"role"`
	Phone             string           `gorm:"size:20" json:"phone,omitempty"`
	Bio               string           `gorm:"type:text" json:"bio,omitempty"`
	Certifications    JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"certifications"`
	ProfilePictureURL string           `gorm:"size:255" json:"profile_picture_url,omitempty"`
	Address           Address          `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	WorkingHours      WorkingHours     `gorm:"embedded;embeddedPrefix:working_" json:"working_hours"`
	OnboardingStep    int              `json:"onboarding_step"`
}

// PublicProfile is the subset of account fields safe to expose on meal
// listings and chef cards.
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":                  u.ID,
		"name":                u.Name,
		"bio":                 u.Bio,
		"profile_picture_url": u.ProfilePictureURL,
		"certifications":      u.Certifications,
	}
}
