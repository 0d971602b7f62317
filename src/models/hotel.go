package models

import "hbs/src/types"

type Hotel struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Name    string `json:"name,omitempty"`
	Slug    string `gorm:"index" json:"slug,omitempty"`
	Address string `json:"address,omitempty"`
	Contact string `json:"contact,omitempty"`
	City    string `json:"city,omitempty"`
	OwnerID uint   `json:"owner_id,omitempty"`

	Owner *User  `gorm:"foreignKey:owner_id" json:"owner,omitempty"`
	Rooms []Room `gorm:"foreignKey:hotel_id" json:"rooms,omitempty"`

	types.Timestamps
}
