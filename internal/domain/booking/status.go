package booking

import (
	"time"

	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPendingPayment      Status = "pending_payment"
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusConfirmed           Status = "confirmed"
	StatusInProgress          Status = "in_progress"
	StatusCompleted           Status = "completed"
	StatusCancelled           Status = "cancelled"
	StatusNoShow              Status = "no_show"
)

// ActiveStatuses são os status que ocupam o horário do barbeiro.
func ActiveStatuses() []string {
	return []string{
		string(StatusPendingPayment),
		string(StatusPendingConfirmation),
		string(StatusConfirmed),
		string(StatusInProgress),
	}
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// InitialStatus define o status inicial conforme a política de
// pré-pagamento da barbearia.
func InitialStatus(requirePrepayment bool) Status {
	if requirePrepayment {
		return StatusPendingPayment
	}
	return StatusPendingConfirmation
}

// ===============================
// Transition guards
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPendingConfirmation {
		return httperr.ErrInvalidState("invalid_state")
	}
	return nil
}

// CanCancel: só antes do horário marcado e só enquanto o booking
// ainda não entrou em andamento.
func CanCancel(current Status, start, now time.Time) error {
	if current != StatusPendingConfirmation && current != StatusConfirmed {
		return httperr.ErrInvalidState("invalid_state")
	}
	if !start.After(now) {
		return httperr.ErrInvalidState("already_started")
	}
	return nil
}

// CanReschedule exige antecedência mínima maior que o cancelamento.
func CanReschedule(current Status, start, now time.Time) error {
	if current != StatusPendingConfirmation && current != StatusConfirmed {
		return httperr.ErrInvalidState("invalid_state")
	}
	if start.Sub(now) < RescheduleNotice {
		return httperr.ErrValidation("reschedule_too_late")
	}
	return nil
}

func CanStart(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrInvalidState("invalid_state")
	}
	return nil
}

func CanComplete(current Status, start, now time.Time) error {
	if current != StatusConfirmed && current != StatusInProgress {
		return httperr.ErrInvalidState("invalid_state")
	}
	if now.Before(start) {
		return httperr.ErrInvalidState("not_started_yet")
	}
	return nil
}

func CanMarkNoShow(current Status, start, now time.Time) error {
	if current != StatusConfirmed && current != StatusInProgress {
		return httperr.ErrInvalidState("invalid_state")
	}
	if now.Before(start) {
		return httperr.ErrInvalidState("not_started_yet")
	}
	return nil
}

func CanAttachReview(current Status, alreadyReviewed bool) error {
	if current != StatusCompleted {
		return httperr.ErrInvalidState("invalid_state")
	}
	if alreadyReviewed {
		return httperr.ErrConflict("already_reviewed")
	}
	return nil
}
