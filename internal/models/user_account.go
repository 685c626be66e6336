package models

import "time"

// Conta de acesso do barbeiro (painel), separada do cadastro público
type UserAccount struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex;not null" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
