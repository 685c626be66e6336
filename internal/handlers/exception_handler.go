package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ExceptionHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.SlotCache
}

func NewExceptionHandler(db *gorm.DB, dispatcher *audit.Dispatcher, slotCache *cache.SlotCache) *ExceptionHandler {
	return &ExceptionHandler{db: db, audit: dispatcher, cache: slotCache}
}

type UpsertExceptionRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD

	IsOff bool `json:"is_off"`

	// Obrigatórios quando não é folga
	CustomStartTime string `json:"custom_start_time"`
	CustomEndTime   string `json:"custom_end_time"`
}

// ListExceptions devolve as exceções de hoje em diante.
// GET /me/exceptions
func (h *ExceptionHandler) ListExceptions(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var exceptions []models.BarberException
	err := h.db.
		Where("barber_id = ? AND exception_date >= ?", barberID, today).
		Order("exception_date").
		Find(&exceptions).Error
	if err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível listar as exceções")
		return
	}

	httpresp.List(c, exceptions)
}

// UpsertException grava a exceção da data; no máximo uma por dia,
// a segunda gravação sobrescreve a primeira.
// POST /me/exceptions
func (h *ExceptionHandler) UpsertException(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	var req UpsertExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date deve estar no formato YYYY-MM-DD")
		return
	}

	if !req.IsOff {
		if !validClock(req.CustomStartTime) || !validClock(req.CustomEndTime) {
			httperr.BadRequest(c, "invalid_time", "horários devem estar no formato HH:MM")
			return
		}
		if req.CustomStartTime >= req.CustomEndTime {
			httperr.BadRequest(c, "invalid_time_range", "custom_start_time deve ser antes de custom_end_time")
			return
		}
	} else {
		// Folga zera o expediente customizado
		req.CustomStartTime = ""
		req.CustomEndTime = ""
	}

	exception := models.BarberException{
		BarberID:        barberID,
		ExceptionDate:   date,
		CustomStartTime: req.CustomStartTime,
		CustomEndTime:   req.CustomEndTime,
		IsOff:           req.IsOff,
	}
	err = h.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "barber_id"}, {Name: "exception_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"custom_start_time", "custom_end_time", "is_off", "updated_at",
		}),
	}).Create(&exception).Error
	if err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível gravar a exceção")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   audit.ActionExceptionUpserted,
		Entity:   "barber_exception",
		EntityID: &exception.ID,
		Metadata: map[string]any{"date": req.Date, "is_off": req.IsOff},
	})
	h.cache.Invalidate(c.Request.Context(), barberID)

	c.JSON(http.StatusOK, exception)
}
