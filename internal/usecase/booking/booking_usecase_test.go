package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sharpcut-app/barber-marketplace/internal/audit"
	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	shop     *models.Barbershop
	service  *models.Service
	hours    map[int]*models.WorkingHours
	override *models.AvailabilityOverride
	blocks   []models.ScheduleBlock
	bookings []models.Booking

	booking *models.Booking
	review  *models.Review

	hasReview bool

	createErr error
	moveErr   error

	created []*models.Booking
	updated []*models.Booking
	moved   []*models.Booking
}

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if f.shop == nil || f.shop.ID != id {
		return nil, errors.New("not found")
	}
	return f.shop, nil
}

func (f *fakeRepo) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	if f.shop == nil || f.shop.Slug != slug {
		return nil, errors.New("not found")
	}
	return f.shop, nil
}

func (f *fakeRepo) GetService(_ context.Context, _, serviceID uint) (*models.Service, error) {
	if f.service == nil || f.service.ID != serviceID {
		return nil, errors.New("not found")
	}
	return f.service, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, shopID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 7, BarbershopID: shopID, Name: name, Phone: phone, Email: email}, nil
}

func (f *fakeRepo) GetWorkingHours(_ context.Context, _ uint, weekday int) (*models.WorkingHours, error) {
	wh, ok := f.hours[weekday]
	if !ok {
		return nil, errors.New("not found")
	}
	return wh, nil
}

func (f *fakeRepo) GetOverride(_ context.Context, _ uint, date string) (*models.AvailabilityOverride, error) {
	if f.override != nil && f.override.Date == date {
		return f.override, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListBlocksFor(_ context.Context, _ uint, _ string) ([]models.ScheduleBlock, error) {
	return f.blocks, nil
}

func (f *fakeRepo) ListActiveBookingsForDay(_ context.Context, _ uint, _, _ time.Time) ([]models.Booking, error) {
	return f.bookings, nil
}

func (f *fakeRepo) CreateBookingIfFree(_ context.Context, b *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = 1
	f.created = append(f.created, b)
	return nil
}

func (f *fakeRepo) MoveBookingIfFree(_ context.Context, b *models.Booking) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	f.moved = append(f.moved, b)
	return nil
}

func (f *fakeRepo) GetBookingForBarber(_ context.Context, bookingID, _ uint) (*models.Booking, error) {
	if f.booking == nil || f.booking.ID != bookingID {
		return nil, errors.New("not found")
	}
	return f.booking, nil
}

func (f *fakeRepo) GetBookingByPublicID(_ context.Context, publicID string) (*models.Booking, error) {
	if f.booking == nil || f.booking.PublicID != publicID {
		return nil, errors.New("not found")
	}
	return f.booking, nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	f.updated = append(f.updated, b)
	return nil
}

func (f *fakeRepo) ListBookingsForPeriod(_ context.Context, _ uint, _, _ time.Time) ([]models.Booking, error) {
	return f.bookings, nil
}

func (f *fakeRepo) HasReview(_ context.Context, _ uint) (bool, error) {
	return f.hasReview, nil
}

func (f *fakeRepo) CreateReview(_ context.Context, r *models.Review) error {
	r.ID = 1
	f.review = r
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

type fakeGateway struct {
	checkoutURL string
	refundErr   error

	paymentStatus string
	externalRef   string

	refunds []float64
}

func (g *fakeGateway) CreateCheckout(_ context.Context, b *models.Booking, _ string) (string, string, error) {
	return g.checkoutURL, "pref-" + b.PublicID, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, _ int64) (string, string, error) {
	return g.paymentStatus, g.externalRef, nil
}

func (g *fakeGateway) Refund(_ context.Context, _ int64, amount float64, _ bool) error {
	if g.refundErr != nil {
		return g.refundErr
	}
	g.refunds = append(g.refunds, amount)
	return nil
}

// ======================================================
// HELPERS
// ======================================================

// Uma segunda-feira com pelo menos uma semana de antecedência, para as
// regras de horário futuro e antecedência mínima não interferirem.
func nextMonday() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 7)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}

func baseRepo() *fakeRepo {
	return &fakeRepo{
		shop: &models.Barbershop{
			ID:                  1,
			Slug:                "sharp-cut",
			Timezone:            "UTC",
			MinAdvanceMinutes:   120,
			SlotIntervalMinutes: 15,
		},
		service: &models.Service{
			ID:           3,
			BarbershopID: 1,
			Name:         "Corte",
			DurationMin:  30,
			Price:        80,
			Active:       true,
		},
		hours: map[int]*models.WorkingHours{
			1: {Weekday: 1, Active: true, StartTime: "09:00", EndTime: "18:00"},
		},
	}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateBookingSuccess(t *testing.T) {
	repo := baseRepo()
	uc := NewCreateBooking(repo, nil, testDispatcher())

	monday := nextMonday()
	b, err := uc.Execute(context.Background(), CreateBookingInput{
		BarbershopID: 1,
		BarberID:     2,
		ClientName:   "João",
		ClientPhone:  "11999990000",
		ServiceID:    3,
		Date:         monday.Format(domain.DateLayout),
		Time:         "10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if b.Status != string(domain.StatusPendingConfirmation) {
		t.Fatalf("status = %s, want pending_confirmation", b.Status)
	}
	if b.PublicID == "" {
		t.Fatal("public id must be assigned")
	}
	if b.DurationMin != 30 || b.TotalPrice != 80 {
		t.Fatalf("snapshot not taken: %+v", b)
	}
	if !b.EndTime.Equal(b.StartTime.Add(30 * time.Minute)) {
		t.Fatalf("end = %v, want start+30m", b.EndTime)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d bookings, want 1", len(repo.created))
	}
}

func TestCreateBookingPrepaymentFlow(t *testing.T) {
	repo := baseRepo()
	repo.shop.RequirePrepayment = true

	gw := &fakeGateway{checkoutURL: "https://mp.example/checkout/1"}
	uc := NewCreateBooking(repo, gw, testDispatcher())

	monday := nextMonday()
	b, err := uc.Execute(context.Background(), CreateBookingInput{
		BarbershopID: 1,
		BarberID:     2,
		ClientName:   "João",
		ClientPhone:  "11999990000",
		ServiceID:    3,
		Date:         monday.Format(domain.DateLayout),
		Time:         "10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if b.Status != string(domain.StatusPendingPayment) {
		t.Fatalf("status = %s, want pending_payment", b.Status)
	}
	if b.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("payment status = %s", b.PaymentStatus)
	}
	if b.CheckoutURL != gw.checkoutURL {
		t.Fatalf("checkout url = %q", b.CheckoutURL)
	}
}

func TestCreateBookingSundayRejected(t *testing.T) {
	repo := baseRepo()
	uc := NewCreateBooking(repo, nil, testDispatcher())

	sunday := nextMonday().AddDate(0, 0, 6)
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BarbershopID: 1,
		BarberID:     2,
		ClientName:   "João",
		ClientPhone:  "11999990000",
		ServiceID:    3,
		Date:         sunday.Format(domain.DateLayout),
		Time:         "10:00",
	})
	if !httperr.IsBusiness(err, "sunday_not_bookable") {
		t.Fatalf("expected sunday_not_bookable, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("rejected request must not persist")
	}
}

func TestCreateBookingConflictSurfaces(t *testing.T) {
	repo := baseRepo()
	repo.createErr = httperr.ErrConflict("time_conflict")
	uc := NewCreateBooking(repo, nil, testDispatcher())

	monday := nextMonday()
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BarbershopID: 1,
		BarberID:     2,
		ClientName:   "João",
		ClientPhone:  "11999990000",
		ServiceID:    3,
		Date:         monday.Format(domain.DateLayout),
		Time:         "10:00",
	})
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateBookingBlockedTime(t *testing.T) {
	repo := baseRepo()
	monday := nextMonday()
	repo.blocks = []models.ScheduleBlock{{
		Date:      monday.Format(domain.DateLayout),
		StartTime: "10:00",
		EndTime:   "11:00",
		Type:      models.BlockBreak,
	}}

	uc := NewCreateBooking(repo, nil, testDispatcher())

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BarbershopID: 1,
		BarberID:     2,
		ClientName:   "João",
		ClientPhone:  "11999990000",
		ServiceID:    3,
		Date:         monday.Format(domain.DateLayout),
		Time:         "10:30",
	})
	if !httperr.IsBusiness(err, "time_blocked") {
		t.Fatalf("expected time_blocked, got %v", err)
	}
}

func TestCreateBookingOutsideWorkingHours(t *testing.T) {
	repo := baseRepo()
	repo.hours[1].EndTime = "12:00"

	uc := NewCreateBooking(repo, nil, testDispatcher())

	monday := nextMonday()
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BarbershopID: 1,
		BarberID:     2,
		ClientName:   "João",
		ClientPhone:  "11999990000",
		ServiceID:    3,
		Date:         monday.Format(domain.DateLayout),
		Time:         "14:00",
	})
	if !httperr.IsBusiness(err, "outside_working_hours") {
		t.Fatalf("expected outside_working_hours, got %v", err)
	}
}

// ======================================================
// CANCEL
// ======================================================

func confirmedBooking(start time.Time) *models.Booking {
	return &models.Booking{
		ID:           10,
		PublicID:     "pub-10",
		BarbershopID: 1,
		BarberID:     2,
		ClientID:     7,
		Client:       models.Client{ID: 7, Phone: "11999990000"},
		StartTime:    start,
		EndTime:      start.Add(30 * time.Minute),
		DurationMin:  30,
		TotalPrice:   80,
		Status:       string(domain.StatusConfirmed),
	}
}

func TestCancelPublicWrongPhone(t *testing.T) {
	repo := baseRepo()
	repo.booking = confirmedBooking(nextMonday().Add(10 * time.Hour))

	uc := NewCancelBooking(repo, nil, testDispatcher())

	_, err := uc.ExecutePublic(context.Background(), "pub-10", "11888880000", "")
	if !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(repo.updated) != 0 {
		t.Fatal("forbidden cancel must not persist")
	}
}

func TestCancelPaidBookingRefundsThroughGateway(t *testing.T) {
	repo := baseRepo()
	start := time.Now().UTC().Add(10 * time.Hour) // multa de 50%
	b := confirmedBooking(start)
	b.PaymentStatus = models.PaymentStatusPaid
	pid := int64(555)
	b.PaymentID = &pid
	repo.booking = b

	gw := &fakeGateway{}
	uc := NewCancelBooking(repo, gw, testDispatcher())

	out, err := uc.Execute(context.Background(), 1, 2, 10, "imprevisto")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if out.CancellationFee != 40 {
		t.Fatalf("fee = %v, want 40", out.CancellationFee)
	}
	if out.RefundAmount != 40 {
		t.Fatalf("refund = %v, want 40", out.RefundAmount)
	}
	if len(gw.refunds) != 1 || gw.refunds[0] != 40 {
		t.Fatalf("gateway refunds = %v", gw.refunds)
	}
	if out.PaymentStatus != models.PaymentStatusPartiallyRefunded {
		t.Fatalf("payment status = %s", out.PaymentStatus)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("updated %d times, want 1", len(repo.updated))
	}
}

func TestCancelRefundFailureKeepsBooking(t *testing.T) {
	repo := baseRepo()
	start := time.Now().UTC().Add(48 * time.Hour)
	b := confirmedBooking(start)
	b.PaymentStatus = models.PaymentStatusPaid
	pid := int64(555)
	b.PaymentID = &pid
	repo.booking = b

	gw := &fakeGateway{refundErr: errors.New("gateway down")}
	uc := NewCancelBooking(repo, gw, testDispatcher())

	_, err := uc.Execute(context.Background(), 1, 2, 10, "")
	if !httperr.IsBusiness(err, "refund_failed") {
		t.Fatalf("expected refund_failed, got %v", err)
	}
	if len(repo.updated) != 0 {
		t.Fatal("failed refund must not persist the cancellation")
	}
}

// ======================================================
// RESCHEDULE
// ======================================================

func TestRescheduleTooLate(t *testing.T) {
	repo := baseRepo()
	repo.booking = confirmedBooking(time.Now().UTC().Add(3 * time.Hour))

	uc := NewRescheduleBooking(repo, testDispatcher())

	monday := nextMonday()
	_, err := uc.Execute(context.Background(), 1, 2, 10,
		monday.Format(domain.DateLayout), "10:00")
	if !httperr.IsBusiness(err, "reschedule_too_late") {
		t.Fatalf("expected reschedule_too_late, got %v", err)
	}
	if len(repo.moved) != 0 {
		t.Fatal("late reschedule must not move the booking")
	}
}

func TestRescheduleMovesBooking(t *testing.T) {
	repo := baseRepo()
	oldStart := nextMonday().Add(10 * time.Hour)
	repo.booking = confirmedBooking(oldStart)

	uc := NewRescheduleBooking(repo, testDispatcher())

	out, err := uc.Execute(context.Background(), 1, 2, 10,
		nextMonday().Format(domain.DateLayout), "11:00")
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	if out.RescheduledFrom == nil || !out.RescheduledFrom.Equal(oldStart) {
		t.Fatalf("rescheduled_from = %v", out.RescheduledFrom)
	}
	if out.StartTime.Hour() != 11 {
		t.Fatalf("new start = %v", out.StartTime)
	}
	if len(repo.moved) != 1 {
		t.Fatalf("moved %d times, want 1", len(repo.moved))
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func TestGetAvailabilityClosedDay(t *testing.T) {
	repo := baseRepo()
	repo.hours = map[int]*models.WorkingHours{} // nenhum expediente

	uc := NewGetAvailability(repo)

	result, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1,
		BarberID:     2,
		ServiceID:    3,
		Date:         nextMonday(),
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	if result.BusinessHours.IsOpen {
		t.Fatal("day without working hours must be closed")
	}
	if len(result.Slots) != 0 {
		t.Fatalf("closed day produced %d slots", len(result.Slots))
	}
}

func TestGetAvailabilityMarksBookedSlots(t *testing.T) {
	repo := baseRepo()
	monday := nextMonday()

	busyStart := time.Date(monday.Year(), monday.Month(), monday.Day(),
		10, 0, 0, 0, time.UTC)
	repo.bookings = []models.Booking{{
		StartTime: busyStart,
		EndTime:   busyStart.Add(30 * time.Minute),
	}}

	uc := NewGetAvailability(repo)

	result, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1,
		BarberID:     2,
		ServiceID:    3,
		Date:         monday,
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	if !result.BusinessHours.IsOpen {
		t.Fatal("day must be open")
	}

	var sawBlocked, sawFree bool
	for _, s := range result.Slots {
		switch s.Start {
		case "10:00", "10:15", "09:45":
			if s.Available {
				t.Fatalf("slot %s overlaps a booking and must be unavailable", s.Start)
			}
			sawBlocked = true
		case "11:00":
			if !s.Available {
				t.Fatal("slot 11:00 must stay available")
			}
			sawFree = true
		}
		if s.Price != 80 {
			t.Fatalf("slot price = %v, want 80", s.Price)
		}
	}

	if !sawBlocked || !sawFree {
		t.Fatalf("expected both annotated and free slots; blocked=%v free=%v", sawBlocked, sawFree)
	}
}

func TestGetAvailabilityOverrideClosesDay(t *testing.T) {
	repo := baseRepo()
	monday := nextMonday()
	repo.override = &models.AvailabilityOverride{
		Date:        monday.Format(domain.DateLayout),
		IsAvailable: false,
	}

	uc := NewGetAvailability(repo)

	result, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1,
		BarberID:     2,
		ServiceID:    3,
		Date:         monday,
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	if result.BusinessHours.IsOpen || len(result.Slots) != 0 {
		t.Fatalf("override must close the day: %+v", result.BusinessHours)
	}
}

// ======================================================
// REVIEW / WEBHOOK
// ======================================================

func TestAttachReviewFlow(t *testing.T) {
	repo := baseRepo()
	b := confirmedBooking(time.Now().UTC().Add(-time.Hour))
	b.Status = string(domain.StatusCompleted)
	repo.booking = b

	uc := NewAttachReview(repo, testDispatcher())

	review, err := uc.Execute(context.Background(), AttachReviewInput{
		PublicID: "pub-10",
		Phone:    "11999990000",
		Rating:   5,
		Comment:  "ótimo corte",
	})
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if review.Rating != 5 || review.BookingID != 10 {
		t.Fatalf("review = %+v", review)
	}

	// Segundo review do mesmo booking é rejeitado
	repo.hasReview = true
	_, err = uc.Execute(context.Background(), AttachReviewInput{
		PublicID: "pub-10",
		Phone:    "11999990000",
		Rating:   4,
	})
	if !httperr.IsBusiness(err, "already_reviewed") {
		t.Fatalf("expected already_reviewed, got %v", err)
	}
}

func TestAttachReviewRejectsNonCompleted(t *testing.T) {
	repo := baseRepo()
	repo.booking = confirmedBooking(time.Now().UTC().Add(24 * time.Hour))

	uc := NewAttachReview(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), AttachReviewInput{
		PublicID: "pub-10",
		Phone:    "11999990000",
		Rating:   5,
	})
	if !httperr.IsKind(err, httperr.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestMarkBookingPaidAdvancesStatus(t *testing.T) {
	repo := baseRepo()
	b := confirmedBooking(time.Now().UTC().Add(24 * time.Hour))
	b.Status = string(domain.StatusPendingPayment)
	b.PaymentStatus = models.PaymentStatusPending
	repo.booking = b

	gw := &fakeGateway{paymentStatus: "approved", externalRef: "pub-10"}
	uc := NewMarkBookingPaid(repo, gw, testDispatcher())

	out, err := uc.Execute(context.Background(), 555)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	if out.Status != string(domain.StatusPendingConfirmation) {
		t.Fatalf("status = %s", out.Status)
	}
	if out.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("payment status = %s", out.PaymentStatus)
	}
}

func TestMarkBookingPaidIgnoresUnapproved(t *testing.T) {
	repo := baseRepo()
	gw := &fakeGateway{paymentStatus: "pending"}
	uc := NewMarkBookingPaid(repo, gw, testDispatcher())

	out, err := uc.Execute(context.Background(), 555)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if out != nil {
		t.Fatalf("unapproved payment must be a no-op, got %+v", out)
	}
	if len(repo.updated) != 0 {
		t.Fatal("unapproved payment must not persist")
	}
}

func TestMarkBookingPaidWithoutGateway(t *testing.T) {
	// A rota do webhook existe mesmo sem MP_ACCESS_TOKEN; uma notificação
	// nessa configuração não pode derrubar o processo.
	repo := baseRepo()
	uc := NewMarkBookingPaid(repo, nil, testDispatcher())

	out, err := uc.Execute(context.Background(), 123)
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if out != nil {
		t.Fatalf("no booking expected, got %+v", out)
	}
	if len(repo.updated) != 0 {
		t.Fatal("nothing must be persisted without a gateway")
	}
}
