package booking

import (
	"time"

	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
)

// ===============================
// Booking Request Validator
// ===============================

// Janela de agendamento da plataforma, independente do expediente
// de cada barbearia (que é validado à parte).
const (
	PlatformOpenHour  = 9
	PlatformCloseHour = 18

	DefaultMinAdvanceMinutes = 120
)

// ValidateRequest aplica as pré-condições de entrada no ciclo de vida:
// horário futuro, janela seg-sáb 09:00-18:00 no fuso da barbearia e
// antecedência mínima. Nada é persistido quando alguma regra falha.
func ValidateRequest(start time.Time, durationMin int, now time.Time, minAdvanceMinutes int) error {
	if durationMin <= 0 {
		return httperr.ErrValidation("invalid_duration")
	}

	if !start.After(now) {
		return httperr.ErrValidation("start_in_past")
	}

	if start.Weekday() == time.Sunday {
		return httperr.ErrValidation("sunday_not_bookable")
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)

	windowOpen := time.Date(start.Year(), start.Month(), start.Day(),
		PlatformOpenHour, 0, 0, 0, start.Location())
	windowClose := time.Date(start.Year(), start.Month(), start.Day(),
		PlatformCloseHour, 0, 0, 0, start.Location())

	if start.Before(windowOpen) || end.After(windowClose) {
		return httperr.ErrValidation("outside_booking_window")
	}

	minAdvance := minAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = DefaultMinAdvanceMinutes
	}
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return httperr.ErrValidation("too_soon")
	}

	return nil
}
