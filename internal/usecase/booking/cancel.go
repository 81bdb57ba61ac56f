package booking

import (
	"context"
	"log"

	"github.com/sharpcut-app/barber-marketplace/internal/audit"
	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
	"github.com/sharpcut-app/barber-marketplace/internal/timezone"
)

type CancelBooking struct {
	repo    domain.Repository
	gateway PaymentGateway
	audit   *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	gateway PaymentGateway,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

// Execute cancela pelo painel do barbeiro.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	bookingID uint,
	reason string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForBarber(ctx, bookingID, barberID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	return uc.cancel(ctx, b, reason, &barberID)
}

// ExecutePublic cancela pelo cliente, autorizado por public_id + telefone.
func (uc *CancelBooking) ExecutePublic(
	ctx context.Context,
	publicID string,
	phone string,
	reason string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByPublicID(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	if b.Client.Phone != phone {
		return nil, httperr.ErrForbidden("not_booking_owner")
	}

	return uc.cancel(ctx, b, reason, nil)
}

func (uc *CancelBooking) cancel(
	ctx context.Context,
	b *models.Booking,
	reason string,
	actorID *uint,
) (*models.Booking, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, b.BarbershopID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(b, reason, now); err != nil {
		return nil, err
	}

	// Estorno antes de persistir: se o gateway falhar, o booking
	// permanece no estado anterior.
	if b.RefundAmount > 0 && b.PaymentID != nil && uc.gateway != nil {
		partial := b.RefundAmount < b.TotalPrice
		if err := uc.gateway.Refund(ctx, *b.PaymentID, b.RefundAmount, partial); err != nil {
			log.Println("refund error:", err)
			return nil, httperr.ErrConflict("refund_failed")
		}
		if partial {
			b.PaymentStatus = models.PaymentStatusPartiallyRefunded
		} else {
			b.PaymentStatus = models.PaymentStatusRefunded
		}
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: b.BarbershopID,
		UserID:       actorID,
		Action:       "booking_cancelled",
		Entity:       "booking",
		EntityID:     &b.ID,
		Metadata: map[string]any{
			"fee":    b.CancellationFee,
			"refund": b.RefundAmount,
		},
	})

	return b, nil
}
