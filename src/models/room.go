package models

import "hbs/src/types"

type Room struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	HotelID       uint    `json:"hotel_id,omitempty"`
	RoomType      string  `json:"room_type,omitempty"`
	PricePerNight float64 `json:"price_per_night,omitempty"`

	Amenities types.JSONBArray `gorm:"type:jsonb" json:"amenities,omitempty"`
	Images    types.JSONBArray `gorm:"type:jsonb" json:"images,omitempty"`

	IsAvailable bool `gorm:"default:true" json:"is_available"`

	Hotel *Hotel `gorm:"foreignKey:hotel_id" json:"hotel,omitempty"`

	types.Timestamps
}
