package models

import (
	"hbs/src/types"
	"time"
)

type Booking struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `json:"user_id,omitempty"`
	RoomID       uint      `json:"room_id,omitempty"`
	HotelID      uint      `json:"hotel_id,omitempty"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	Guests       uint      `json:"guests,omitempty"`
	TotalPrice   float64   `json:"total_price"`
	Status       string    `json:"status,omitempty"`

	PaymentMethod   string     `json:"payment_method,omitempty"`
	IsPaid          bool       `json:"is_paid"`
	PaymentDate     *time.Time `json:"payment_date,omitempty"`
	StripeSessionId *string    `gorm:"index" json:"stripe_session_id,omitempty"`

	User  *User  `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Room  *Room  `gorm:"foreignKey:room_id" json:"room,omitempty"`
	Hotel *Hotel `gorm:"foreignKey:hotel_id" json:"hotel,omitempty"`

	types.Timestamps
}
