package models

import "time"

// AvailabilityOverride substitui o expediente padrão em uma data
// específica. No máximo um override por barbeiro por data.
type AvailabilityOverride struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_override_barber_date" json:"barber_id"`

	Date        string `gorm:"size:10;uniqueIndex:idx_override_barber_date" json:"date"` // YYYY-MM-DD
	IsAvailable bool   `json:"is_available"`

	// Horário substituto (opcional; vazio = mantém o expediente padrão)
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
