package models

import "time"

const (
	BlockUnavailable = "unavailable"
	BlockBreak       = "break"
	BlockVacation    = "vacation"
	BlockAppointment = "appointment"
)

// ScheduleBlock reserva um trecho do dia do barbeiro fora dos bookings
// (pausa, férias, bloqueio). Blocos recorrentes valem toda semana no
// mesmo dia da semana da data original.
type ScheduleBlock struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Date      string `gorm:"size:10;index" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"size:5" json:"start_time"`  // HH:MM
	EndTime   string `gorm:"size:5" json:"end_time"`    // HH:MM

	Type        string `gorm:"size:20;default:'unavailable'" json:"type"`
	IsRecurring bool   `gorm:"default:false" json:"is_recurring"`
	Reason      string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
