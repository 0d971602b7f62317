package models

import (
	"hbs/src/types"
	"time"
)

type User struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Username    string     `gorm:"uniqueIndex" json:"username,omitempty"`
	Email       string     `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string     `json:"-"`
	Role        string     `json:"role,omitempty"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`

	Preferences          types.JSONB      `gorm:"type:jsonb" json:"preferences,omitempty"`
	RecentSearchedCities types.JSONBArray `gorm:"type:jsonb" json:"recent_searched_cities,omitempty"`

	// FaceDescriptor is the fixed-length numeric vector produced by the
	// browser-side recognition library. Never serialized back to clients.
	FaceDescriptor types.JSONBArray `gorm:"type:jsonb" json:"-"`
	FaceRegistered bool             `json:"face_registered,omitempty"`

	Bookings []Booking `gorm:"foreignKey:user_id" json:"bookings,omitempty"`
	Hotels   []Hotel   `gorm:"foreignKey:owner_id" json:"hotels,omitempty"`

	types.Timestamps
}
