package booking

import "time"

const (
	// Antecedência mínima para cancelar sem multa
	FreeCancelNotice = 24 * time.Hour

	// Abaixo disso o cancelamento retém o valor integral
	LateCancelNotice = 2 * time.Hour

	// Reagendamento exige mais antecedência que cancelamento
	RescheduleNotice = 4 * time.Hour
)

// CancellationFee retorna a multa retida sobre o valor do booking:
// >= 24h: 0%, entre 2h e 24h: 50%, < 2h: 100%.
func CancellationFee(totalPrice float64, start, now time.Time) float64 {
	notice := start.Sub(now)

	switch {
	case notice >= FreeCancelNotice:
		return 0
	case notice >= LateCancelNotice:
		return totalPrice * 0.5
	default:
		return totalPrice
	}
}

// RefundFor calcula o estorno devido: só há estorno se o booking
// foi pago, e a multa é abatida.
func RefundFor(totalPrice float64, fee float64, paid bool) float64 {
	if !paid {
		return 0
	}
	refund := totalPrice - fee
	if refund < 0 {
		return 0
	}
	return refund
}
