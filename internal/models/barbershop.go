package models

import "time"

type Barbershop struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	// Coordenadas preenchidas por geocoding externo
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Timezone string `gorm:"size:50" json:"timezone"`

	MinAdvanceMinutes   int  `gorm:"default:120" json:"min_advance_minutes"`
	SlotIntervalMinutes int  `gorm:"default:15" json:"slot_interval_minutes"`
	RequirePrepayment   bool `gorm:"default:false" json:"require_prepayment"`

	AvatarURL string `gorm:"size:255" json:"avatar_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
