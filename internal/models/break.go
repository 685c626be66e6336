package models

import "time"

// Pausa de duração fixa (uma unidade de gap_minutes) em uma data/hora específica.
// Pode haver várias por (barber_id, break_date).
type BarberBreak struct {
	ID uint `gorm:"primaryKey" json:"break_id"`

	BarberID uint   `gorm:"index;not null" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BreakDate time.Time `gorm:"type:date;not null" json:"break_date"`
	BreakTime string    `gorm:"size:5;not null" json:"break_time"` // HH:MM

	Type string `gorm:"size:30;not null" json:"type"`

	BookingID *uint `json:"booking_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
