package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type UpdatePrice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdatePrice(repo domain.Repository, dispatcher *audit.Dispatcher) *UpdatePrice {
	return &UpdatePrice{repo: repo, audit: dispatcher}
}

// Execute ajusta o preço cobrado de um booking já existente.
// O booking precisa pertencer ao barbeiro autenticado.
func (uc *UpdatePrice) Execute(
	ctx context.Context,
	barberID uint,
	bookingID uint,
	newPrice float64,
) (*models.Booking, error) {

	booking, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	if booking.BarberID != barberID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	oldPrice := booking.Price
	booking.Price = newPrice
	if err := uc.repo.SaveBooking(ctx, booking); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &booking.BarberID,
		Action:   audit.ActionPriceUpdated,
		Entity:   "booking",
		EntityID: &booking.ID,
		Metadata: map[string]any{"old_price": oldPrice, "new_price": newPrice},
	})

	return booking, nil
}
