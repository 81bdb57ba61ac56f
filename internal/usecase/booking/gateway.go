package booking

import (
	"context"

	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

// PaymentGateway é o colaborador de pagamentos. O ciclo de vida do
// booking só consome o resultado; a integração concreta vive em
// internal/payments.
type PaymentGateway interface {
	// CreateCheckout cria a cobrança de um booking pré-pago e devolve
	// a URL de checkout e a referência do gateway.
	CreateCheckout(ctx context.Context, b *models.Booking, serviceName string) (checkoutURL string, ref string, err error)

	// GetPayment consulta um pagamento: status e referência externa
	// (o public_id do booking).
	GetPayment(ctx context.Context, paymentID int64) (status string, externalRef string, err error)

	// Refund estorna total ou parcialmente um pagamento aprovado.
	Refund(ctx context.Context, paymentID int64, amount float64, partial bool) error
}
