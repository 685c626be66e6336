package models

import "time"

type Barber struct {
	ID   uint   `gorm:"primaryKey" json:"barber_id"`
	Name string `gorm:"size:100;not null" json:"name"`

	PhotoURL string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
