package models

import (
	"time"

	"github.com/lib/pq"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"booking_id"`

	// Referência pública exibida ao cliente
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	BarberID uint   `gorm:"uniqueIndex:uq_barber_slot;not null" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CustomerName string `gorm:"size:100;not null" json:"customer_name"`

	// Índice único composto com barber_id: um booking por (barbeiro, horário).
	// É essa constraint que fecha a corrida do check-then-insert.
	AppointmentTime time.Time `gorm:"uniqueIndex:uq_barber_slot;not null" json:"appointment_time"`

	Email string  `gorm:"size:100" json:"email"`
	Phone string  `gorm:"size:20" json:"phone"`
	Price float64 `gorm:"type:numeric(10,2)" json:"price"`

	// IDs de serviços extras somados à duração total
	Extra pq.Int64Array `gorm:"type:integer[]" json:"extra"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
