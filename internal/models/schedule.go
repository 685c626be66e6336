package models

import "time"

// Expediente padrão do barbeiro (hora do dia, sem data)
type BarberSchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex;not null" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartTime string `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`   // HH:MM

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Janela de datas (inclusiva) em que o barbeiro oferece horários
type BarberAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex;not null" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
