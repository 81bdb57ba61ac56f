package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	usecase "github.com/sharpcut-app/barber-marketplace/internal/usecase/booking"
)

type PaymentWebhookHandler struct {
	markPaid *usecase.MarkBookingPaid
}

func NewPaymentWebhookHandler(markPaid *usecase.MarkBookingPaid) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{markPaid: markPaid}
}

type paymentNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Handle processa a notificação do Mercado Pago. O gateway reenvia em
// caso de não-200, então respondemos 200 para tudo que não for falha
// nossa.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	// Notificações chegam como query string ou JSON dependendo do modo
	paymentIDStr := c.Query("data.id")
	notifType := c.Query("type")

	if paymentIDStr == "" {
		var n paymentNotification
		if err := c.ShouldBindJSON(&n); err == nil {
			paymentIDStr = n.Data.ID
			notifType = n.Type
		}
	}

	if notifType != "" && notifType != "payment" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	paymentID, err := strconv.ParseInt(paymentIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	b, err := h.markPaid.Execute(c.Request.Context(), paymentID)
	if err != nil {
		// not_found inclui pagamentos de outros ambientes; não reprocessar
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if b == nil {
		c.JSON(http.StatusOK, gin.H{"status": "pending"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "processed",
		"booking_id": b.ID,
	})
}
