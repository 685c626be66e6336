package slots

import (
	"context"
	"time"

	bookingdomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/slots"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ListInput struct {
	ServiceNames []string
	GapMinutes   int
	Now          time.Time
}

type BarberWithSlots struct {
	BarberID uint                  `json:"barber_id"`
	Name     string                `json:"name"`
	PhotoURL string                `json:"photo_url,omitempty"`
	Price    float64               `json:"price"`
	Days     map[string][]FreeSlot `json:"days"`
}

type ListOutput struct {
	EstimatedMinutes int               `json:"estimated_minutes"`
	Barbers          []BarberWithSlots `json:"barbers"`
}

// ======================================================
// USE CASE
// ======================================================

// ListBarbersWithSlots resolve os serviços pedidos por nome, soma as
// durações, encontra os barbeiros que oferecem ao menos um deles e
// calcula a disponibilidade de cada um dentro da própria janela de
// atendimento.
type ListBarbersWithSlots struct {
	repo bookingdomain.Repository
}

func NewListBarbersWithSlots(repo bookingdomain.Repository) *ListBarbersWithSlots {
	return &ListBarbersWithSlots{repo: repo}
}

func (uc *ListBarbersWithSlots) Execute(
	ctx context.Context,
	in ListInput,
) (*ListOutput, error) {

	serviceIDs, err := uc.repo.ServiceIDsByNames(ctx, in.ServiceNames)
	if err != nil {
		return nil, err
	}
	if len(serviceIDs) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	ids64 := make([]int64, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		ids64 = append(ids64, int64(id))
	}
	minutesByService, err := uc.repo.ServiceMinutesByIDs(ctx, ids64)
	if err != nil {
		return nil, err
	}
	totalMinutes := 0
	for _, minutes := range minutesByService {
		totalMinutes += minutes
	}

	barbers, err := uc.repo.BarbersForServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	if len(barbers) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	prices, err := uc.repo.PriceTotalsByBarber(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	schedules, err := uc.repo.Schedules(ctx)
	if err != nil {
		return nil, err
	}
	windows, err := uc.repo.AvailabilityWindows(ctx)
	if err != nil {
		return nil, err
	}

	barberIDs := make([]uint, 0, len(barbers))
	for _, b := range barbers {
		barberIDs = append(barberIDs, b.ID)
	}

	// Horizonte de busca: da data de hoje até o fim da maior janela
	// de disponibilidade entre os barbeiros selecionados
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, domain.DefaultWindowDays)
	for _, id := range barberIDs {
		if w, ok := windows[id]; ok && w.End.After(to) {
			to = w.End
		}
	}

	bookings, err := uc.repo.BookingIntervals(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	breaks, err := uc.repo.BreakTimes(ctx, from, to)
	if err != nil {
		return nil, err
	}
	exceptions, err := uc.repo.Exceptions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out, err := domain.Generate(domain.Input{
		Schedules:              schedules,
		Availability:           windows,
		Bookings:               bookings,
		Breaks:                 breaks,
		Exceptions:             exceptions,
		BarberIDs:              barberIDs,
		GapMinutes:             in.GapMinutes,
		ServiceDurationMinutes: totalMinutes,
		Now:                    now,
	})
	if err != nil {
		return nil, err
	}

	result := &ListOutput{
		EstimatedMinutes: totalMinutes,
		Barbers:          make([]BarberWithSlots, 0, len(barbers)),
	}
	for _, b := range barbers {
		days := map[string][]FreeSlot{}
		for dateStr, daySlots := range out[b.ID] {
			free := make([]FreeSlot, 0, len(daySlots))
			for _, slot := range daySlots {
				free = append(free, FreeSlot{
					Start: slot.Start.Format("15:04"),
					End:   slot.End.Format("15:04"),
				})
			}
			days[dateStr] = free
		}
		result.Barbers = append(result.Barbers, BarberWithSlots{
			BarberID: b.ID,
			Name:     b.Name,
			PhotoURL: b.PhotoURL,
			Price:    prices[b.ID],
			Days:     days,
		})
	}

	return result, nil
}
