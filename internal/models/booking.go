package models

import "time"

const (
	PaymentStatusNone              = "none"
	PaymentStatusPending           = "pending"
	PaymentStatusPaid              = "paid"
	PaymentStatusRefunded          = "refunded"
	PaymentStatusPartiallyRefunded = "partially_refunded"
)

type Booking struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex;not null" json:"public_id"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	BarberID uint `gorm:"index" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Snapshot do serviço no momento da criação; alterações posteriores
	// de preço/duração não afetam bookings existentes.
	DurationMin int     `json:"duration_min"`
	TotalPrice  float64 `json:"total_price"`

	Status string `gorm:"size:25;default:'pending_confirmation'" json:"status"`

	PaymentStatus string `gorm:"size:25;default:'none'" json:"payment_status"`
	PaymentID     *int64 `json:"payment_id"`
	PaymentRef    string `gorm:"size:100" json:"payment_ref"`
	CheckoutURL   string `gorm:"size:500" json:"checkout_url"`

	Notes              string  `gorm:"size:255" json:"notes"`
	CancellationReason string  `gorm:"size:255" json:"cancellation_reason"`
	CancellationFee    float64 `json:"cancellation_fee"`
	RefundAmount       float64 `json:"refund_amount"`

	ConfirmedAt     *time.Time `json:"confirmed_at"`
	StartedAt       *time.Time `json:"started_at"`
	CancelledAt     *time.Time `json:"cancelled_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	NoShowAt        *time.Time `json:"no_show_at"`
	RescheduledFrom *time.Time `json:"rescheduled_from"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
