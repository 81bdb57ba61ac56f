package booking

import (
	"context"

	"github.com/sharpcut-app/barber-marketplace/internal/audit"
	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

type MarkBookingPaid struct {
	repo    domain.Repository
	gateway PaymentGateway
	audit   *audit.Dispatcher
}

func NewMarkBookingPaid(
	repo domain.Repository,
	gateway PaymentGateway,
	audit *audit.Dispatcher,
) *MarkBookingPaid {
	return &MarkBookingPaid{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

// Execute processa a notificação do gateway: consulta o pagamento e,
// se aprovado, avança o booking de pending_payment para
// pending_confirmation. Idempotente para webhooks repetidos.
func (uc *MarkBookingPaid) Execute(
	ctx context.Context,
	paymentID int64,
) (*models.Booking, error) {

	// Sem token configurado o gateway não existe, mas a rota do webhook
	// continua registrada; notificações chegam e devem ser ignoradas.
	if uc.gateway == nil {
		return nil, httperr.ErrConflict("payments_disabled")
	}

	status, externalRef, err := uc.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if status != "approved" {
		return nil, nil // ainda pendente ou rejeitado; nada a fazer
	}

	b, err := uc.repo.GetBookingByPublicID(ctx, externalRef)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	if err := domain.MarkPaid(b, paymentID); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: b.BarbershopID,
		Action:       "booking_paid",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}
