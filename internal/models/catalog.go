package models

import "time"

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"category_id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"category_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Service struct {
	ID uint `gorm:"primaryKey" json:"service_id"`

	CategoryID uint     `json:"category_id"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name        string `gorm:"size:100;not null" json:"service_name"`
	Description string `gorm:"size:255" json:"description"`

	EstimatedMinutes int `gorm:"not null" json:"estimated_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Vínculo barbeiro ↔ serviço com o preço praticado por esse barbeiro.
// Tabela única de junção (o legado mantinha duas quase idênticas).
type BarberServicePrice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex:uq_barber_service;not null" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"uniqueIndex:uq_barber_service;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Price float64 `gorm:"type:numeric(10,2);not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
