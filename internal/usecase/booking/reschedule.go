package booking

import (
	"context"
	"time"

	"github.com/sharpcut-app/barber-marketplace/internal/audit"
	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
	"github.com/sharpcut-app/barber-marketplace/internal/timezone"
)

type RescheduleBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	bookingID uint,
	date string,
	timeStr string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForBarber(ctx, bookingID, barberID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	return uc.reschedule(ctx, b, date, timeStr, &barberID)
}

func (uc *RescheduleBooking) ExecutePublic(
	ctx context.Context,
	publicID string,
	phone string,
	date string,
	timeStr string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByPublicID(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	if b.Client.Phone != phone {
		return nil, httperr.ErrForbidden("not_booking_owner")
	}

	return uc.reschedule(ctx, b, date, timeStr, nil)
}

func (uc *RescheduleBooking) reschedule(
	ctx context.Context,
	b *models.Booking,
	date string,
	timeStr string,
	actorID *uint,
) (*models.Booking, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, b.BarbershopID)
	if err != nil {
		return nil, err
	}

	newStart, err := time.ParseInLocation(
		"2006-01-02 15:04",
		date+" "+timeStr,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time")
	}

	now := timezone.NowIn(shop.Timezone)

	// O novo horário passa pelas mesmas pré-condições da criação.
	if err := domain.ValidateRequest(newStart, b.DurationMin, now, shop.MinAdvanceMinutes); err != nil {
		return nil, err
	}

	newEnd := newStart.Add(time.Duration(b.DurationMin) * time.Minute)
	if err := uc.assertWithinSchedule(ctx, b.BarberID, newStart, newEnd); err != nil {
		return nil, err
	}

	if err := domain.Reschedule(b, newStart, now); err != nil {
		return nil, err
	}

	// Revalida conflito no novo horário dentro da transação.
	if err := uc.repo.MoveBookingIfFree(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: b.BarbershopID,
		UserID:       actorID,
		Action:       "booking_rescheduled",
		Entity:       "booking",
		EntityID:     &b.ID,
		Metadata: map[string]any{
			"from": b.RescheduledFrom,
			"to":   b.StartTime,
		},
	})

	return b, nil
}

func (uc *RescheduleBooking) assertWithinSchedule(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) error {

	weekday := int(start.Weekday())

	wh, err := uc.repo.GetWorkingHours(ctx, barberID, weekday)
	if err != nil {
		wh = nil
	}

	ov, err := uc.repo.GetOverride(ctx, barberID, start.Format(domain.DateLayout))
	if err != nil {
		return err
	}

	hours := domain.ResolveDayHours(wh, ov)
	if !domain.FitsWithin(start, hours, start, end) {
		return httperr.ErrValidation("outside_working_hours")
	}

	blocks, err := uc.repo.ListBlocksFor(ctx, barberID, start.Format(domain.DateLayout))
	if err != nil {
		return err
	}

	for _, iv := range domain.BusyFromBlocks(start, blocks) {
		if iv.Overlaps(start, end) {
			return httperr.ErrConflict("time_blocked")
		}
	}

	return nil
}
