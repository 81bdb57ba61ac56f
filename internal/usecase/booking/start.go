package booking

import (
	"context"

	"github.com/sharpcut-app/barber-marketplace/internal/audit"
	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
	"github.com/sharpcut-app/barber-marketplace/internal/timezone"
)

type StartBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartBooking {
	return &StartBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute marca o início do atendimento (confirmed → in_progress).
func (uc *StartBooking) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	bookingID uint,
) (*models.Booking, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForBarber(ctx, bookingID, barberID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Start(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "booking_started",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}
