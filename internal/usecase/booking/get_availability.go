package booking

import (
	"context"
	"time"

	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute calcula os slots do dia para um serviço: candidatos na
// cadência da barbearia, anotados contra bookings ativos, blocos,
// almoço e antecedência mínima. Puro sobre as entradas do repositório;
// mesmo input, mesmo output.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.AvailabilityResult, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrNotFound("barbershop_not_found")
	}

	svc, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrNotFound("service_not_found")
	}

	weekday := int(in.Date.Weekday())

	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, weekday)
	if err != nil {
		wh = nil // sem expediente cadastrado = dia fechado
	}

	ov, err := uc.repo.GetOverride(ctx, in.BarberID, in.Date.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}

	hours := domain.ResolveDayHours(wh, ov)

	result := &domain.AvailabilityResult{
		Slots: []domain.TimeSlot{},
		BusinessHours: domain.BusinessHours{
			IsOpen: hours.Open,
			Start:  hours.Start,
			End:    hours.End,
		},
	}

	if !hours.Open {
		return result, nil
	}

	slots := domain.GenerateSlots(in.Date, hours, svc.DurationMin, shop.SlotIntervalMinutes)

	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0, in.Date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := uc.repo.ListActiveBookingsForDay(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListBlocksFor(ctx, in.BarberID, in.Date.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}

	busy := domain.BusyFromBookings(bookings)
	busy = append(busy, domain.BusyFromBlocks(in.Date, blocks)...)
	if lunch, ok := domain.LunchInterval(in.Date, hours); ok {
		busy = append(busy, lunch)
	}

	domain.MarkBusy(slots, busy)

	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = domain.DefaultMinAdvanceMinutes
	}
	now := timezone.NowIn(shop.Timezone)
	domain.MarkBefore(slots, now.Add(time.Duration(minAdvance)*time.Minute))

	for _, s := range slots {
		result.Slots = append(result.Slots, domain.TimeSlot{
			Start:     s.Start.Format(domain.HourLayout),
			End:       s.End.Format(domain.HourLayout),
			Available: s.Available,
			Price:     svc.Price,
		})
	}

	return result, nil
}
