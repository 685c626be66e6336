package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucbooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type BookingHandler struct {
	create      *ucbooking.Create
	updatePrice *ucbooking.UpdatePrice
	upcoming    *ucbooking.ListUpcoming
	dayOverview *ucbooking.DayOverview
}

func NewBookingHandler(
	create *ucbooking.Create,
	updatePrice *ucbooking.UpdatePrice,
	upcoming *ucbooking.ListUpcoming,
	dayOverview *ucbooking.DayOverview,
) *BookingHandler {
	return &BookingHandler{
		create:      create,
		updatePrice: updatePrice,
		upcoming:    upcoming,
		dayOverview: dayOverview,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	BarberID        uint    `json:"barber_id" binding:"required"`
	ServiceID       uint    `json:"service_id" binding:"required"`
	CustomerName    string  `json:"customer_name" binding:"required"`
	AppointmentTime string  `json:"appointment_time" binding:"required"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Price           float64 `json:"price"`
	Extra           []int64 `json:"extra"`
}

type UpdatePriceRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// --------- Handlers ---------

// CreateBooking cria um agendamento público.
// POST /public/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	at, err := parseAppointmentTime(req.AppointmentTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_time",
			"appointment_time deve ser 'YYYY-MM-DD HH:MM' ou RFC 3339")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain",
			"o domínio do e-mail informado não parece ser válido")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), ucbooking.CreateInput{
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		AppointmentTime: at,
		Email:           email,
		Phone:           strings.TrimSpace(req.Phone),
		Price:           req.Price,
		Extra:           req.Extra,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeSlotUnavailable):
			httperr.Conflict(c, httperr.CodeSlotUnavailable, "horário acabou de ser ocupado")
		case httperr.IsBusiness(err, httperr.CodeNotFound):
			httperr.NotFound(c, httperr.CodeNotFound, "barbeiro ou serviço não encontrado")
		default:
			httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível criar o agendamento")
		}
		return
	}

	httpresp.Created(c, out)
}

// ListMyBookings lista os agendamentos do barbeiro a partir de hoje.
// GET /me/bookings
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	bookings, err := h.upcoming.Execute(c.Request.Context(), barberID, timezone.Now())
	if err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível listar os agendamentos")
		return
	}

	httpresp.List(c, bookings)
}

// UpdateBookingPrice ajusta o preço de um agendamento do barbeiro.
// PATCH /me/bookings/:id/price
func (h *BookingHandler) UpdateBookingPrice(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "id deve ser um inteiro positivo")
		return
	}

	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	booking, err := h.updatePrice.Execute(c.Request.Context(), barberID, uint(bookingID), req.Price)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			httperr.NotFound(c, httperr.CodeNotFound, "agendamento não encontrado")
			return
		}
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível atualizar o preço")
		return
	}

	httpresp.OK(c, booking)
}

// GetMyDay devolve a visão do dia: janela resolvida, bookings e pausas.
// GET /me/day?date=YYYY-MM-DD (default: hoje)
func (h *BookingHandler) GetMyDay(c *gin.Context) {
	barberID := c.GetUint(middleware.ContextBarberID)

	now := timezone.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "date deve estar no formato YYYY-MM-DD")
			return
		}
		date = parsed
	}

	out, err := h.dayOverview.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Internal(c, httperr.CodeDataUnavailable, "não foi possível montar a visão do dia")
		return
	}

	httpresp.OK(c, out)
}
