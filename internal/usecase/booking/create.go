package booking

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sharpcut-app/barber-marketplace/internal/audit"
	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
	"github.com/sharpcut-app/barber-marketplace/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    domain.Repository
	gateway PaymentGateway
	audit   *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	gateway PaymentGateway,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrNotFound("barbershop_not_found")
	}

	// Data/hora no fuso da barbearia
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time")
	}

	svc, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	if !svc.Active {
		return nil, httperr.ErrValidation("service_inactive")
	}

	now := timezone.NowIn(shop.Timezone)

	// Pré-condições da plataforma (futuro, seg-sáb 09-18, antecedência)
	if err := domain.ValidateRequest(start, svc.DurationMin, now, shop.MinAdvanceMinutes); err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	// Expediente do barbeiro (override da data prevalece)
	if err := uc.assertWithinSchedule(ctx, in.BarberID, start, end); err != nil {
		return nil, err
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	initial := domain.InitialStatus(shop.RequirePrepayment)
	paymentStatus := models.PaymentStatusNone
	if initial == domain.StatusPendingPayment {
		paymentStatus = models.PaymentStatusPending
	}

	b := &models.Booking{
		PublicID:     uuid.NewString(),
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     client.ID,
		ServiceID:    svc.ID,

		StartTime: start,
		EndTime:   end,

		// snapshot: preço e duração congelados na criação
		DurationMin: svc.DurationMin,
		TotalPrice:  svc.Price,

		Status:        string(initial),
		PaymentStatus: paymentStatus,
		Notes:         in.Notes,
	}

	// Criação atômica: re-checagem de conflito + insert na mesma
	// transação, com a exclusion constraint como rede de segurança.
	if err := uc.repo.CreateBookingIfFree(ctx, b); err != nil {
		return nil, err
	}

	if initial == domain.StatusPendingPayment && uc.gateway != nil {
		url, ref, err := uc.gateway.CreateCheckout(ctx, b, svc.Name)
		if err != nil {
			// booking fica aguardando; checkout pode ser reemitido
			log.Println("checkout error:", err)
		} else {
			b.CheckoutURL = url
			b.PaymentRef = ref
			if err := uc.repo.UpdateBooking(ctx, b); err != nil {
				return nil, err
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "booking_created",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}

// assertWithinSchedule valida o horário contra expediente, almoço e
// blocos de agenda do barbeiro.
func (uc *CreateBooking) assertWithinSchedule(
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
