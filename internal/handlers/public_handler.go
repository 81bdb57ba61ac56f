package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/barber-marketplace/internal/cache"
	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
	usecase "github.com/sharpcut-app/barber-marketplace/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	db *gorm.DB

	availability *usecase.GetAvailability
	create       *usecase.CreateBooking
	cancel       *usecase.CancelBooking
	reschedule   *usecase.RescheduleBooking
	review       *usecase.AttachReview

	cache *cache.AvailabilityCache
}

func NewPublicHandler(
	db *gorm.DB,
	availability *usecase.GetAvailability,
	create *usecase.CreateBooking,
	cancel *usecase.CancelBooking,
	reschedule *usecase.RescheduleBooking,
	review *usecase.AttachReview,
	cache *cache.AvailabilityCache,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
		cancel:       cancel,
		reschedule:   reschedule,
		review:       review,
		cache:        cache,
	}
}

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	slug := c.Param("slug")

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}

	return &shop, true
}

func (h *PublicHandler) ownerBarber(c *gin.Context, shopID uint) (*models.User, bool) {
	var barber models.User
	if err := h.db.
		Where("barbershop_id = ? AND role = ?", shopID, "owner").
		First(&barber).Error; err != nil {

		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		return nil, false
	}

	return &barber, true
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("barbershop_id = ? AND active = true", shop.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"services":   services,
	})
}

// ======================================================
// AVAILABILITY (REUSO TOTAL DO USE CASE + CACHE)
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	barber, ok := h.ownerBarber(c, shop.ID)
	if !ok {
		return
	}

	date, err := parseDateInShop(shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	if cached, hit := h.cache.Get(c.Request.Context(), barber.ID, uint(serviceID), dateStr); hit {
		c.JSON(http.StatusOK, gin.H{
			"date":  dateStr,
			"slots": cached.Slots,

			"business_hours": cached.BusinessHours,
		})
		return
	}

	result, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarbershopID: shop.ID,
			BarberID:     barber.ID,
			ServiceID:    uint(serviceID),
			Date:         date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	h.cache.Set(c.Request.Context(), barber.ID, uint(serviceID), dateStr, result)

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": result.Slots,

		"business_hours": result.BusinessHours,
	})
}

// ======================================================
// CREATE BOOKING (PUBLIC → REUSA O USE CASE PRIVADO)
// ======================================================

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barber, ok := h.ownerBarber(c, shop.ID)
	if !ok {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		BarbershopID: shop.ID,
		BarberID:     barber.ID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_create_booking")
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), barber.ID, b.StartTime.Format(domain.DateLayout))

	// Resposta pública enxuta: o cliente gerencia pelo public_id
	c.JSON(http.StatusCreated, gin.H{
		"public_id":    b.PublicID,
		"status":       b.Status,
		"start_time":   b.StartTime,
		"end_time":     b.EndTime,
		"total_price":  b.TotalPrice,
		"checkout_url": b.CheckoutURL,
	})
}

// ======================================================
// BOOKING LOOKUP / LIFECYCLE (public_id + telefone)
// ======================================================

func (h *PublicHandler) GetBooking(c *gin.Context) {
	publicID := c.Param("public_id")
	phone := c.Query("phone")

	var b models.Booking
	if err := h.db.
		Preload("Client").
		Preload("Service").
		Preload("Barbershop").
		Where("public_id = ?", publicID).
		First(&b).Error; err != nil {

		httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
		return
	}

	if b.Client.Phone != phone {
		httperr.Forbidden(c, "not_booking_owner", "Ação não permitida.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"public_id":   b.PublicID,
		"status":      b.Status,
		"start_time":  b.StartTime,
		"end_time":    b.EndTime,
		"service":     b.Service.Name,
		"barbershop":  b.Barbershop.Name,
		"total_price": b.TotalPrice,

		"payment_status":   b.PaymentStatus,
		"cancellation_fee": b.CancellationFee,
		"refund_amount":    b.RefundAmount,
	})
}

type PublicCancelRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Reason string `json:"reason"`
}

func (h *PublicHandler) CancelBooking(c *gin.Context) {
	publicID := c.Param("public_id")

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.cancel.ExecutePublic(c.Request.Context(), publicID, req.Phone, req.Reason)
	if err != nil {
		writeBusinessError(c, err, "failed_to_cancel_booking")
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), b.BarberID, b.StartTime.Format(domain.DateLayout))

	c.JSON(http.StatusOK, gin.H{
		"public_id":        b.PublicID,
		"status":           b.Status,
		"cancellation_fee": b.CancellationFee,
		"refund_amount":    b.RefundAmount,
	})
}

type PublicRescheduleRequest struct {
	Phone string `json:"phone" binding:"required"`
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
}

func (h *PublicHandler) RescheduleBooking(c *gin.Context) {
	publicID := c.Param("public_id")

	var req PublicRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.reschedule.ExecutePublic(
		c.Request.Context(),
		publicID,
		req.Phone,
		req.Date,
		req.Time,
	)
	if err != nil {
		writeBusinessError(c, err, "failed_to_reschedule_booking")
		return
	}

	if b.RescheduledFrom != nil {
		h.cache.InvalidateDay(c.Request.Context(), b.BarberID, b.RescheduledFrom.Format(domain.DateLayout))
	}
	h.cache.InvalidateDay(c.Request.Context(), b.BarberID, b.StartTime.Format(domain.DateLayout))

	c.JSON(http.StatusOK, gin.H{
		"public_id":  b.PublicID,
		"status":     b.Status,
		"start_time": b.StartTime,
		"end_time":   b.EndTime,
	})
}

// ======================================================
// REVIEWS
// ======================================================

type PublicReviewRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (h *PublicHandler) CreateReview(c *gin.Context) {
	publicID := c.Param("public_id")

	var req PublicReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	review, err := h.review.Execute(c.Request.Context(), usecase.AttachReviewInput{
		PublicID: publicID,
		Phone:    req.Phone,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_create_review")
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *PublicHandler) ListReviews(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var reviews []models.Review
	if err := h.db.
		Where("barbershop_id = ?", shop.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&reviews).Error; err != nil {

		httperr.Internal(c, "failed_to_list_reviews", "Erro ao listar avaliações.")
		return
	}

	var avg struct {
		Avg   float64
		Count int64
	}
	h.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("barbershop_id = ?", shop.ID).
		Scan(&avg)

	c.JSON(http.StatusOK, gin.H{
		"reviews":        reviews,
		"average_rating": avg.Avg,
		"total":          avg.Count,
	})
}
