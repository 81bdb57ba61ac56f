package booking

import (
	"context"
	"time"

	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Availability inputs --------
	GetWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// nil sem erro quando não há override para a data
	GetOverride(
		ctx context.Context,
		barberID uint,
		date string,
	) (*models.AvailabilityOverride, error)

	ListBlocksFor(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.ScheduleBlock, error)

	ListActiveBookingsForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Booking (create / reschedule, atômicos) --------
	CreateBookingIfFree(
		ctx context.Context,
		b *models.Booking,
	) error

	MoveBookingIfFree(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (lookup / state change) --------
	GetBookingForBarber(
		ctx context.Context,
		bookingID uint,
		barberID uint,
	) (*models.Booking, error)

	GetBookingByPublicID(
		ctx context.Context,
		publicID string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Review --------
	HasReview(
		ctx context.Context,
		bookingID uint,
	) (bool, error)

	CreateReview(
		ctx context.Context,
		review *models.Review,
	) error
}
