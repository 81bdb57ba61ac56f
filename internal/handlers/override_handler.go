package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sharpcut-app/barber-marketplace/internal/cache"
	"github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/middleware"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

type OverrideHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewOverrideHandler(db *gorm.DB, cache *cache.AvailabilityCache) *OverrideHandler {
	return &OverrideHandler{db: db, cache: cache}
}

type OverrideUpsertRequest struct {
	Date        string `json:"date" binding:"required"`
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	LunchStart  string `json:"lunch_start"`
	LunchEnd    string `json:"lunch_end"`
	Reason      string `json:"reason"`
}

func (h *OverrideHandler) List(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	barberID := userIDVal.(uint)

	query := h.db.Where("barber_id = ?", barberID)

	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var overrides []models.AvailabilityOverride
	if err := query.Order("date ASC").Find(&overrides).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_overrides"})
		return
	}

	c.JSON(http.StatusOK, overrides)
}

// Upsert cria ou substitui o override da data (um por barbeiro/data).
func (h *OverrideHandler) Upsert(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	barberID := userIDVal.(uint)

	var req OverrideUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if _, err := time.Parse(booking.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}
	if req.IsAvailable && req.StartTime != "" && req.StartTime >= req.EndTime {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_override_window"})
		return
	}

	override := models.AvailabilityOverride{
		BarberID:    barberID,
		Date:        req.Date,
		IsAvailable: req.IsAvailable,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		LunchStart:  req.LunchStart,
		LunchEnd:    req.LunchEnd,
		Reason:      req.Reason,
	}

	err := h.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "barber_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_available", "start_time", "end_time",
			"lunch_start", "lunch_end", "reason", "updated_at",
		}),
	}).Create(&override).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_override"})
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), barberID, req.Date)

	c.JSON(http.StatusOK, override)
}

func (h *OverrideHandler) Delete(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	barberID := userIDVal.(uint)

	date := c.Param("date")
	if _, err := time.Parse(booking.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	result := h.db.
		Where("barber_id = ? AND date = ?", barberID, date).
		Delete(&models.AvailabilityOverride{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_override"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "override_not_found"})
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), barberID, date)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
