package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/barber-marketplace/internal/cache"
	"github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
	"github.com/sharpcut-app/barber-marketplace/internal/middleware"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

type ScheduleBlockHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewScheduleBlockHandler(db *gorm.DB, cache *cache.AvailabilityCache) *ScheduleBlockHandler {
	return &ScheduleBlockHandler{db: db, cache: cache}
}

type ScheduleBlockCreateRequest struct {
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Type        string `json:"type"`
	IsRecurring bool   `json:"is_recurring"`
	Reason      string `json:"reason"`
}

func validBlockType(t string) bool {
	switch t {
	case models.BlockUnavailable, models.BlockBreak, models.BlockVacation:
		return true
	}
	return false
}

func (h *ScheduleBlockHandler) List(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	barberID := userIDVal.(uint)

	query := h.db.Where("barber_id = ?", barberID)

	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ? OR is_recurring = true", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ? OR is_recurring = true", to)
	}

	var blocks []models.ScheduleBlock
	if err := query.Order("date ASC, start_time ASC").Find(&blocks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_blocks"})
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *ScheduleBlockHandler) Create(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	barberID := userIDVal.(uint)

	var req ScheduleBlockCreateRequest
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
	if req.StartTime >= req.EndTime {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_block_window"})
		return
	}

	blockType := req.Type
	if blockType == "" {
		blockType = models.BlockUnavailable
	}
	if !validBlockType(blockType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_block_type"})
		return
	}

	block := models.ScheduleBlock{
		BarberID:    barberID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Type:        blockType,
		IsRecurring: req.IsRecurring,
		Reason:      req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_block"})
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), barberID, req.Date)

	c.JSON(http.StatusCreated, block)
}

func (h *ScheduleBlockHandler) Delete(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	barberID := userIDVal.(uint)

	blockID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_block_id"})
		return
	}

	var block models.ScheduleBlock
	if err := h.db.
		Where("id = ? AND barber_id = ?", blockID, barberID).
		First(&block).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "block_not_found"})
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_block"})
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), barberID, block.Date)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
