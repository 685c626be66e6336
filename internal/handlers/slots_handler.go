package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/slots"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucslots "github.com/BruksfildServices01/barber-booking/internal/usecase/slots"
)

type SlotsHandler struct {
	getFreeSlots *ucslots.GetFreeSlots
	listBarbers  *ucslots.ListBarbersWithSlots
}

func NewSlotsHandler(
	getFreeSlots *ucslots.GetFreeSlots,
	listBarbers *ucslots.ListBarbersWithSlots,
) *SlotsHandler {
	return &SlotsHandler{
		getFreeSlots: getFreeSlots,
		listBarbers:  listBarbers,
	}
}

// GetAvailability devolve os horários livres de um barbeiro em uma data.
// GET /public/availability?barber_id=&date=&service_id=&gap=
func (h *SlotsHandler) GetAvailability(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Query("barber_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id deve ser um inteiro positivo")
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date deve estar no formato YYYY-MM-DD")
		return
	}

	var serviceID uint64
	if raw := c.Query("service_id"); raw != "" {
		serviceID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "service_id deve ser um inteiro positivo")
			return
		}
	}

	gap := 0
	if raw := c.Query("gap"); raw != "" {
		gap, err = strconv.Atoi(raw)
		if err != nil || gap <= 0 {
			httperr.BadRequest(c, "invalid_gap", "gap deve ser um inteiro positivo de minutos")
			return
		}
	}

	free, err := h.getFreeSlots.Execute(c.Request.Context(), ucslots.FreeSlotsInput{
		BarberID:   uint(barberID),
		Date:       date,
		ServiceID:  uint(serviceID),
		GapMinutes: gap,
		Now:        timezone.Now(),
	})
	if err != nil {
		writeSlotsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id": barberID,
		"date":      date.Format(dateLayout),
		"slots":     free,
	})
}

type barbersAndSlotsRequest struct {
	Services   []string `json:"services" binding:"required,min=1"`
	GapMinutes int      `json:"gap_minutes"`
}

// ListBarbersAndSlots resolve os serviços escolhidos e devolve, por
// barbeiro que oferece algum deles, o preço total dos que oferece e os
// horários livres.
// POST /public/barbers-and-slots
func (h *SlotsHandler) ListBarbersAndSlots(c *gin.Context) {
	var req barbersAndSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	out, err := h.listBarbers.Execute(c.Request.Context(), ucslots.ListInput{
		ServiceNames: req.Services,
		GapMinutes:   req.GapMinutes,
		Now:          timezone.Now(),
	})
	if err != nil {
		writeSlotsError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// writeSlotsError traduz os erros do cálculo de disponibilidade
func writeSlotsError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeNotFound):
		httperr.NotFound(c, httperr.CodeNotFound, "serviço ou barbeiro não encontrado")
	case errors.Is(err, slots.ErrInvalidScheduleData):
		httperr.Internal(c, httperr.CodeInvalidScheduleData, "dados de expediente inválidos")
	default:
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível calcular a disponibilidade")
	}
}
