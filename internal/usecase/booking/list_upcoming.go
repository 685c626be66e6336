package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

type ListUpcoming struct {
	repo domain.Repository
}

func NewListUpcoming(repo domain.Repository) *ListUpcoming {
	return &ListUpcoming{repo: repo}
}

// Execute lista os bookings do barbeiro a partir da meia-noite de hoje
func (uc *ListUpcoming) Execute(
	ctx context.Context,
	barberID uint,
	now time.Time,
) ([]domain.WithDuration, error) {

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return uc.repo.BookingsFrom(ctx, barberID, today)
}
