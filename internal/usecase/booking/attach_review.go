package booking

import (
	"context"

	"github.com/sharpcut-app/barber-marketplace/internal/audit"
	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

type AttachReviewInput struct {
	PublicID string
	Phone    string
	Rating   int
	Comment  string
}

type AttachReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAttachReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AttachReview {
	return &AttachReview{
		repo:  repo,
		audit: audit,
	}
}

// Execute anexa a avaliação do cliente a um booking concluído.
// Uma única avaliação por booking; só o dono do booking pode avaliar.
func (uc *AttachReview) Execute(
	ctx context.Context,
	in AttachReviewInput,
) (*models.Review, error) {

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrValidation("invalid_rating")
	}

	b, err := uc.repo.GetBookingByPublicID(ctx, in.PublicID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	if b.Client.Phone != in.Phone {
		return nil, httperr.ErrForbidden("not_booking_owner")
	}

	reviewed, err := uc.repo.HasReview(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanAttachReview(domain.Status(b.Status), reviewed); err != nil {
		return nil, err
	}

	review := &models.Review{
		BookingID:    b.ID,
		BarbershopID: b.BarbershopID,
		BarberID:     b.BarberID,
		ClientID:     b.ClientID,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}

	if err := uc.repo.CreateReview(ctx, review); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrConflict("already_reviewed")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: b.BarbershopID,
		Action:       "review_attached",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return review, nil
}
