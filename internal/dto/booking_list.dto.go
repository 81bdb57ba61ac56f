package dto

import "time"

type BookingListDTO struct {
	ID          uint      `json:"id"`
	PublicID    string    `json:"public_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
	TotalPrice  float64   `json:"total_price"`
}
