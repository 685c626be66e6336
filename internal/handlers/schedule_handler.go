package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ScheduleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.SlotCache
}

func NewScheduleHandler(db *gorm.DB, dispatcher *audit.Dispatcher, slotCache *cache.SlotCache) *ScheduleHandler {
	return &ScheduleHandler{db: db, audit: dispatcher, cache: slotCache}
}

type UpdateScheduleRequest struct {
	StartTime string `json:"start_time" binding:"required"` // HH:MM
	EndTime   string `json:"end_time" binding:"required"`

	// Janela de datas opcional; ambas ou nenhuma
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// GetSchedule devolve expediente e janela de disponibilidade do barbeiro.
// GET /me/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	out := gin.H{"schedule": nil, "availability": nil}

	var schedule models.BarberSchedule
	err := h.db.Where("barber_id = ?", barberID).First(&schedule).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível carregar o expediente")
		return
	}
	if err == nil {
		out["schedule"] = schedule
	}

	var availability models.BarberAvailability
	err = h.db.Where("barber_id = ?", barberID).First(&availability).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível carregar a disponibilidade")
		return
	}
	if err == nil {
		out["availability"] = availability
	}

	c.JSON(http.StatusOK, out)
}

// UpdateSchedule grava (upsert) expediente e, opcionalmente, a janela de datas.
// PUT /me/schedule
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validClock(req.StartTime) || !validClock(req.EndTime) {
		httperr.BadRequest(c, "invalid_time", "horários devem estar no formato HH:MM")
		return
	}
	if req.StartTime >= req.EndTime {
		httperr.BadRequest(c, "invalid_time_range", "start_time deve ser antes de end_time")
		return
	}

	schedule := models.BarberSchedule{
		BarberID:  barberID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "barber_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "updated_at"}),
	}).Create(&schedule).Error
	if err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível gravar o expediente")
		return
	}

	out := gin.H{"schedule": schedule}

	if req.StartDate != "" || req.EndDate != "" {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "start_date deve estar no formato YYYY-MM-DD")
			return
		}
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "end_date deve estar no formato YYYY-MM-DD")
			return
		}
		if endDate.Before(startDate) {
			httperr.BadRequest(c, "invalid_date_range", "end_date deve ser igual ou depois de start_date")
			return
		}

		availability := models.BarberAvailability{
			BarberID:  barberID,
			StartDate: startDate,
			EndDate:   endDate,
		}
		err = h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_date", "end_date", "updated_at"}),
		}).Create(&availability).Error
		if err != nil {
			httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível gravar a disponibilidade")
			return
		}
		out["availability"] = availability
	}

	h.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   audit.ActionScheduleUpdated,
		Entity:   "barber_schedule",
		EntityID: &schedule.ID,
		Metadata: map[string]any{"start_time": req.StartTime, "end_time": req.EndTime},
	})
	h.cache.Invalidate(c.Request.Context(), barberID)

	c.JSON(http.StatusOK, out)
}
