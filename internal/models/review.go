package models

import "time"

// Uma avaliação por booking concluído.
type Review struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"uniqueIndex" json:"booking_id"`

	BarbershopID uint `gorm:"index" json:"barbershop_id"`
	BarberID     uint `json:"barber_id"`
	ClientID     uint `json:"client_id"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
