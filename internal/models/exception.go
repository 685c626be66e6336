package models

import "time"

// Exceção por data: folga (IsOff) ou expediente customizado para aquele dia.
// No máximo uma por (barber_id, exception_date) — gravação por upsert.
type BarberException struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex:uq_barber_exception_date;not null" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ExceptionDate time.Time `gorm:"type:date;uniqueIndex:uq_barber_exception_date;not null" json:"exception_date"`

	CustomStartTime string `gorm:"size:5" json:"custom_start_time"` // HH:MM, vazio quando folga
	CustomEndTime   string `gorm:"size:5" json:"custom_end_time"`
	IsOff           bool   `gorm:"default:false" json:"is_off"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
