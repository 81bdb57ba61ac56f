package booking

import (
	"time"

	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Cada ação valida a transição e só então muta o booking em memória.
// Persistência é responsabilidade do chamador.

func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

func Start(b *models.Booking, now time.Time) error {
	if err := CanStart(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusInProgress)
	b.StartedAt = &now
	return nil
}

// Cancel aplica a multa por antecedência sobre o preço congelado e
// registra o estorno devido quando o booking já foi pago.
func Cancel(b *models.Booking, reason string, now time.Time) error {
	if err := CanCancel(Status(b.Status), b.StartTime, now); err != nil {
		return err
	}

	fee := CancellationFee(b.TotalPrice, b.StartTime, now)
	paid := b.PaymentStatus == models.PaymentStatusPaid

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancellationReason = reason
	b.CancellationFee = fee
	b.RefundAmount = RefundFor(b.TotalPrice, fee, paid)
	return nil
}

// Reschedule move o booking para o novo horário mantendo a duração
// congelada. O chamador revalida conflito de agenda no novo horário.
func Reschedule(b *models.Booking, newStart time.Time, now time.Time) error {
	if err := CanReschedule(Status(b.Status), b.StartTime, now); err != nil {
		return err
	}

	prev := b.StartTime
	b.RescheduledFrom = &prev
	b.StartTime = newStart
	b.EndTime = newStart.Add(time.Duration(b.DurationMin) * time.Minute)
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status), b.StartTime, now); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func MarkNoShow(b *models.Booking, now time.Time) error {
	if err := CanMarkNoShow(Status(b.Status), b.StartTime, now); err != nil {
		return err
	}

	b.Status = string(StatusNoShow)
	b.NoShowAt = &now
	return nil
}

// MarkPaid avança um booking pendente de pagamento após a confirmação
// do gateway.
func MarkPaid(b *models.Booking, paymentID int64) error {
	if Status(b.Status) != StatusPendingPayment {
		return nil // webhook repetido; idempotente
	}

	b.Status = string(StatusPendingConfirmation)
	b.PaymentStatus = models.PaymentStatusPaid
	b.PaymentID = &paymentID
	return nil
}
