package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/slots"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type BreakHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.SlotCache
}

func NewBreakHandler(
	db *gorm.DB,
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	slotCache *cache.SlotCache,
) *BreakHandler {
	return &BreakHandler{db: db, repo: repo, audit: dispatcher, cache: slotCache}
}

type AddBreaksRequest struct {
	Date  string   `json:"date" binding:"required"`        // YYYY-MM-DD
	Times []string `json:"times" binding:"required,min=1"` // HH:MM, uma unidade de gap cada
	Type  string   `json:"type" binding:"required"`

	BookingID *uint `json:"booking_id"`
}

// ListBreaks lista as pausas de hoje em diante, com filtro opcional de tipo.
// GET /me/breaks?type=
func (h *BreakHandler) ListBreaks(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	q := h.db.
		Where("barber_id = ? AND break_date >= ?", barberID, today).
		Order("break_date, break_time")

	if breakType := c.Query("type"); breakType != "" {
		q = q.Where("type = ?", breakType)
	}

	var breaks []models.BarberBreak
	if err := q.Find(&breaks).Error; err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível listar as pausas")
		return
	}

	httpresp.List(c, breaks)
}

// AddBreaks grava uma pausa por horário informado.
// POST /me/breaks
func (h *BreakHandler) AddBreaks(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	var req AddBreaksRequest
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

	for _, clock := range req.Times {
		if !validClock(clock) {
			httperr.BadRequest(c, "invalid_time", "horários devem estar no formato HH:MM")
			return
		}
	}

	// Pausa não pode cair em cima de um booking já marcado
	bookings, err := h.repo.BookingsOn(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível verificar os agendamentos do dia")
		return
	}
	for _, clock := range req.Times {
		if breakConflictsWithBookings(date, clock, slots.DefaultGapMinutes, bookings) {
			httperr.Conflict(c, httperr.CodeSlotUnavailable,
				"a pausa das "+clock+" cai em cima de um agendamento existente")
			return
		}
	}

	breaks := make([]models.BarberBreak, 0, len(req.Times))
	for _, clock := range req.Times {
		breaks = append(breaks, models.BarberBreak{
			BarberID:  barberID,
			BreakDate: date,
			BreakTime: clock,
			Type:      req.Type,
			BookingID: req.BookingID,
		})
	}

	if err := h.db.Create(&breaks).Error; err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível gravar as pausas")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   audit.ActionBreakAdded,
		Entity:   "barber_break",
		Metadata: map[string]any{"date": req.Date, "times": req.Times, "type": req.Type},
	})
	h.cache.Invalidate(c.Request.Context(), barberID)

	httpresp.Created(c, gin.H{"breaks": breaks})
}

// DeleteBreak remove uma pausa do barbeiro autenticado.
// DELETE /me/breaks/:id
func (h *BreakHandler) DeleteBreak(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	breakID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_break_id", "id deve ser um inteiro positivo")
		return
	}

	var barberBreak models.BarberBreak
	err = h.db.
		Where("id = ? AND barber_id = ?", breakID, barberID).
		First(&barberBreak).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "pausa não encontrada")
			return
		}
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível carregar a pausa")
		return
	}

	if err := h.db.Delete(&barberBreak).Error; err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível remover a pausa")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   audit.ActionBreakDeleted,
		Entity:   "barber_break",
		EntityID: &barberBreak.ID,
	})
	h.cache.Invalidate(c.Request.Context(), barberID)

	c.Status(http.StatusNoContent)
}

// breakConflictsWithBookings testa a unidade de pausa [início, início+gap)
// contra os intervalos [horário, horário+duração total) dos bookings do dia
func breakConflictsWithBookings(
	date time.Time,
	clock string,
	unitMinutes int,
	bookings []domain.WithDuration,
) bool {
	parsed, err := time.Parse(clockLayout, clock)
	if err != nil {
		return false
	}

	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location(),
	)
	end := start.Add(time.Duration(unitMinutes) * time.Minute)

	for _, b := range bookings {
		bookingEnd := b.AppointmentTime.Add(time.Duration(b.TotalMinutes) * time.Minute)
		if start.Before(bookingEnd) && b.AppointmentTime.Before(end) {
			return true
		}
	}
	return false
}
