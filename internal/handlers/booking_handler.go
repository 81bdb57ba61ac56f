package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sharpcut-app/barber-marketplace/internal/cache"
	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/httpresp"
	"github.com/sharpcut-app/barber-marketplace/internal/middleware"
	usecase "github.com/sharpcut-app/barber-marketplace/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create      *usecase.CreateBooking
	confirm     *usecase.ConfirmBooking
	cancel      *usecase.CancelBooking
	reschedule  *usecase.RescheduleBooking
	start       *usecase.StartBooking
	complete    *usecase.CompleteBooking
	noShow      *usecase.MarkNoShow
	listByDate  *usecase.ListBookingsByDate
	listByMonth *usecase.ListBookingsByMonth

	cache *cache.AvailabilityCache
}

func NewBookingHandler(
	create *usecase.CreateBooking,
	confirm *usecase.ConfirmBooking,
	cancel *usecase.CancelBooking,
	reschedule *usecase.RescheduleBooking,
	start *usecase.StartBooking,
	complete *usecase.CompleteBooking,
	noShow *usecase.MarkNoShow,
	listByDate *usecase.ListBookingsByDate,
	listByMonth *usecase.ListBookingsByMonth,
	cache *cache.AvailabilityCache,
) *BookingHandler {
	return &BookingHandler{
		create:      create,
		confirm:     confirm,
		cancel:      cancel,
		reschedule:  reschedule,
		start:       start,
		complete:    complete,
		noShow:      noShow,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		cache:       cache,
	}
}

func (h *BookingHandler) identity(c *gin.Context) (barberID uint, barbershopID uint) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	shopIDVal, _ := c.Get(middleware.ContextBarbershopID)
	return userIDVal.(uint), shopIDVal.(uint)
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_booking_id"})
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

type BookingCreateRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	barberID, barbershopID := h.identity(c)

	var req BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
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

	h.cache.InvalidateDay(c.Request.Context(), barberID, b.StartTime.Format(domain.DateLayout))

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	barberID, barbershopID := h.identity(c)

	date, err := time.Parse(domain.DateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), barberID, barbershopID, date)
	if err != nil {
		writeBusinessError(c, err, "failed_to_list_bookings")
		return
	}

	httpresp.List(c, out)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	barberID, barbershopID := h.identity(c)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_year_or_month"})
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), barberID, barbershopID, year, month)
	if err != nil {
		writeBusinessError(c, err, "failed_to_list_bookings")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// TRANSIÇÕES DE STATUS
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	barberID, barbershopID := h.identity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := h.confirm.Execute(c.Request.Context(), barbershopID, barberID, bookingID)
	if err != nil {
		writeBusinessError(c, err, "failed_to_confirm_booking")
		return
	}

	c.JSON(http.StatusOK, b)
}

type BookingCancelRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	barberID, barbershopID := h.identity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req BookingCancelRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.cancel.Execute(c.Request.Context(), barbershopID, barberID, bookingID, req.Reason)
	if err != nil {
		writeBusinessError(c, err, "failed_to_cancel_booking")
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), barberID, b.StartTime.Format(domain.DateLayout))

	c.JSON(http.StatusOK, b)
}

type BookingRescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	barberID, barbershopID := h.identity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req BookingRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	b, err := h.reschedule.Execute(
		c.Request.Context(),
		barbershopID,
		barberID,
		bookingID,
		req.Date,
		req.Time,
	)
	if err != nil {
		writeBusinessError(c, err, "failed_to_reschedule_booking")
		return
	}

	// Invalida o dia antigo e o novo
	if b.RescheduledFrom != nil {
		h.cache.InvalidateDay(c.Request.Context(), barberID, b.RescheduledFrom.Format(domain.DateLayout))
	}
	h.cache.InvalidateDay(c.Request.Context(), barberID, b.StartTime.Format(domain.DateLayout))

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Start(c *gin.Context) {
	barberID, barbershopID := h.identity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := h.start.Execute(c.Request.Context(), barbershopID, barberID, bookingID)
	if err != nil {
		writeBusinessError(c, err, "failed_to_start_booking")
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	barberID, barbershopID := h.identity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := h.complete.Execute(c.Request.Context(), barbershopID, barberID, bookingID)
	if err != nil {
		writeBusinessError(c, err, "failed_to_complete_booking")
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	barberID, barbershopID := h.identity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := h.noShow.Execute(c.Request.Context(), barbershopID, barberID, bookingID)
	if err != nil {
		writeBusinessError(c, err, "failed_to_mark_no_show")
		return
	}

	c.JSON(http.StatusOK, b)
}
