package booking

import "time"

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	Date         time.Time
}

type TimeSlot struct {
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

type BusinessHours struct {
	IsOpen bool   `json:"is_open"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
}

type AvailabilityResult struct {
	Slots         []TimeSlot    `json:"slots"`
	BusinessHours BusinessHours `json:"business_hours"`
}
