package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *BookingGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Availability inputs
// --------------------------------------------------

func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *BookingGormRepository) GetOverride(
	ctx context.Context,
	barberID uint,
	date string,
) (*models.AvailabilityOverride, error) {

	var ov models.AvailabilityOverride
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		First(&ov).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ov, nil
}

// ListBlocksFor retorna os blocos da data mais os recorrentes do
// barbeiro; o filtro de dia da semana dos recorrentes é do domínio.
func (r *BookingGormRepository) ListBlocksFor(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.ScheduleBlock, error) {

	var blocks []models.ScheduleBlock
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND (date = ? OR is_recurring = true)",
			barberID, date,
		).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *BookingGormRepository) ListActiveBookingsForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"barber_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			barberID, domain.ActiveStatuses(), start, end,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Booking (create / reschedule)
// --------------------------------------------------

// CreateBookingIfFree insere o booking numa transação que antes trava
// e conta conflitos; a exclusion constraint do Postgres cobre o que a
// transação não cobrir. Exatamente um de dois creates concorrentes
// para o mesmo horário vence.
func (r *BookingGormRepository) CreateBookingIfFree(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				b.BarberID, domain.ActiveStatuses(), b.EndTime, b.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrConflict("time_conflict")
		}

		return tx.Create(b).Error
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrConflict("time_conflict")
		}
		return err
	}

	return nil
}

// MoveBookingIfFree persiste um reagendamento revalidando conflito no
// novo horário, ignorando o próprio booking.
func (r *BookingGormRepository) MoveBookingIfFree(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND id <> ? AND status IN ? AND start_time < ? AND end_time > ?",
				b.BarberID, b.ID, domain.ActiveStatuses(), b.EndTime, b.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrConflict("time_conflict")
		}

		return tx.Save(b).Error
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrConflict("time_conflict")
		}
		return err
	}

	return nil
}

// --------------------------------------------------
// Booking (lookup / state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForBarber(
	ctx context.Context,
	bookingID uint,
	barberID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND barber_id = ?", bookingID, barberID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) GetBookingByPublicID(
	ctx context.Context,
	publicID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("public_id = ?", publicID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *BookingGormRepository) HasReview(
	ctx context.Context,
	bookingID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *BookingGormRepository) CreateReview(
	ctx context.Context,
	review *models.Review,
) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
