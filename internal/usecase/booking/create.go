package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/payments"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateInput struct {
	BarberID        uint
	ServiceID       uint
	CustomerName    string
	AppointmentTime time.Time
	Email           string
	Phone           string
	Price           float64
	Extra           []int64
}

type CreateOutput struct {
	Booking *models.Booking `json:"booking"`

	// URL de checkout do sinal; vazio quando pagamento está desabilitado
	PaymentURL string `json:"payment_url,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	cache    *cache.SlotCache
	payments *payments.Client
}

func NewCreate(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	slotCache *cache.SlotCache,
	paymentsClient *payments.Client,
) *Create {
	return &Create{
		repo:     repo,
		audit:    dispatcher,
		cache:    slotCache,
		payments: paymentsClient,
	}
}

func (uc *Create) Execute(
	ctx context.Context,
	in CreateInput,
) (*CreateOutput, error) {

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	if len(in.Extra) > 0 {
		minutes, err := uc.repo.ServiceMinutesByIDs(ctx, in.Extra)
		if err != nil {
			return nil, err
		}
		for _, id := range in.Extra {
			if _, ok := minutes[id]; !ok {
				return nil, httperr.ErrBusiness(httperr.CodeNotFound)
			}
		}
	}

	// Checagem antecipada apenas para responder rápido no caso comum;
	// quem garante exclusividade de verdade é o índice único
	count, err := uc.repo.CountBookingsAt(ctx, in.BarberID, in.AppointmentTime)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		uc.dispatchConflict(in)
		return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	booking := &models.Booking{
		Reference:       uuid.NewString(),
		BarberID:        in.BarberID,
		ServiceID:       in.ServiceID,
		CustomerName:    in.CustomerName,
		AppointmentTime: in.AppointmentTime,
		Email:           in.Email,
		Phone:           in.Phone,
		Price:           in.Price,
		Extra:           in.Extra,
	}

	if err := uc.repo.CreateBooking(ctx, booking); err != nil {
		if isUniqueViolation(err) {
			uc.dispatchConflict(in)
			return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &booking.BarberID,
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: &booking.ID,
		Metadata: map[string]any{
			"reference":        booking.Reference,
			"appointment_time": booking.AppointmentTime,
		},
	})
	uc.cache.Invalidate(ctx, booking.BarberID)

	out := &CreateOutput{Booking: booking}

	if uc.payments.Enabled() && booking.Price > 0 {
		url, err := uc.payments.CreateBookingPreference(ctx, booking, service.Name)
		if err != nil {
			// pagamento é opcional: falha não desfaz o booking
			log.Println("payment preference error:", err)
		} else {
			out.PaymentURL = url
		}
	}

	return out, nil
}

func (uc *Create) dispatchConflict(in CreateInput) {
	barberID := in.BarberID
	uc.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   audit.ActionBookingConflict,
		Entity:   "booking",
		Metadata: map[string]any{"appointment_time": in.AppointmentTime},
	})
}

// isUniqueViolation detecta SQLSTATE 23505 vindo do driver
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
