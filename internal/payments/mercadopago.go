package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/mercadopago/sdk-go/pkg/refund"

	"github.com/sharpcut-app/barber-marketplace/internal/models"
	usecase "github.com/sharpcut-app/barber-marketplace/internal/usecase/booking"
)

// MercadoPagoGateway implementa o colaborador de pagamentos do ciclo
// de vida do booking. O public_id do booking viaja como
// external_reference e volta no webhook.
type MercadoPagoGateway struct {
	preferences preference.Client
	payments    payment.Client
	refunds     refund.Client

	notificationURL string
}

func NewMercadoPagoGateway(accessToken, publicBaseURL string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPagoGateway{
		preferences:     preference.NewClient(cfg),
		payments:        payment.NewClient(cfg),
		refunds:         refund.NewClient(cfg),
		notificationURL: fmt.Sprintf("%s/api/payments/webhook", publicBaseURL),
	}, nil
}

func (g *MercadoPagoGateway) CreateCheckout(
	ctx context.Context,
	b *models.Booking,
	serviceName string,
) (string, string, error) {

	resp, err := g.preferences.Create(ctx, preference.Request{
		ExternalReference: b.PublicID,
		NotificationURL:   g.notificationURL,
		Items: []preference.ItemRequest{
			{
				Title:     serviceName,
				Quantity:  1,
				UnitPrice: b.TotalPrice,
			},
		},
	})
	if err != nil {
		return "", "", err
	}

	return resp.InitPoint, resp.ID, nil
}

func (g *MercadoPagoGateway) GetPayment(
	ctx context.Context,
	paymentID int64,
) (string, string, error) {

	resp, err := g.payments.Get(ctx, int(paymentID))
	if err != nil {
		return "", "", err
	}

	return resp.Status, resp.ExternalReference, nil
}

func (g *MercadoPagoGateway) Refund(
	ctx context.Context,
	paymentID int64,
	amount float64,
	partial bool,
) error {

	if partial {
		_, err := g.refunds.CreatePartialRefund(ctx, int(paymentID), amount)
		return err
	}

	_, err := g.refunds.Create(ctx, int(paymentID))
	return err
}

// Compile-time check
var _ usecase.PaymentGateway = (*MercadoPagoGateway)(nil)
