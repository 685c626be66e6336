package slots

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	bookingdomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/slots"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type FreeSlotsInput struct {
	BarberID uint
	Date     time.Time // meia-noite no fuso da barbearia

	// Opcional: duração vem do serviço; zero ⇒ slots do tamanho do gap
	ServiceID uint

	GapMinutes int
	Now        time.Time
}

type FreeSlot struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`
}

// ======================================================
// USE CASE
// ======================================================

type GetFreeSlots struct {
	repo  bookingdomain.Repository
	cache *cache.SlotCache
}

func NewGetFreeSlots(repo bookingdomain.Repository, slotCache *cache.SlotCache) *GetFreeSlots {
	return &GetFreeSlots{repo: repo, cache: slotCache}
}

func (uc *GetFreeSlots) Execute(
	ctx context.Context,
	in FreeSlotsInput,
) ([]FreeSlot, error) {

	gap := in.GapMinutes
	if gap <= 0 {
		gap = domain.DefaultGapMinutes
	}

	duration := gap
	if in.ServiceID != 0 {
		service, err := uc.repo.GetService(ctx, in.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness(httperr.CodeNotFound)
			}
			return nil, err
		}
		duration = service.EstimatedMinutes
	}

	dateStr := in.Date.Format("2006-01-02")

	if payload, ok := uc.cache.Get(ctx, in.BarberID, dateStr, duration, gap); ok {
		var cached []FreeSlot
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	schedules := map[uint]domain.DaySchedule{}
	schedule, err := uc.repo.ScheduleFor(ctx, in.BarberID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if schedule != nil {
		// Sem expediente cadastrado o mapa fica vazio e o motor
		// fecha o dia (zero slots) em vez de falhar
		schedules[in.BarberID] = domain.DaySchedule{
			Start: schedule.StartTime,
			End:   schedule.EndTime,
		}
	}

	dayBookings, err := uc.repo.BookingsOn(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, err
	}
	intervals := make([]domain.BookingInterval, 0, len(dayBookings))
	for _, b := range dayBookings {
		intervals = append(intervals, domain.BookingInterval{
			Start:           b.AppointmentTime,
			DurationMinutes: b.TotalMinutes,
		})
	}

	dayBreaks, err := uc.repo.BreaksOn(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, err
	}
	breakClocks := make([]string, 0, len(dayBreaks))
	for _, b := range dayBreaks {
		breakClocks = append(breakClocks, b.BreakTime)
	}

	exceptions := map[string]map[uint]domain.Exception{}
	exception, err := uc.repo.ExceptionFor(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, err
	}
	if exception != nil {
		exceptions[dateStr] = map[uint]domain.Exception{
			in.BarberID: {
				Off:   exception.IsOff,
				Start: exception.CustomStartTime,
				End:   exception.CustomEndTime,
			},
		}
	}

	out, err := domain.Generate(domain.Input{
		Schedules:    schedules,
		Availability: map[uint]domain.DateRange{in.BarberID: {Start: in.Date, End: in.Date}},
		Bookings:     map[uint][]domain.BookingInterval{in.BarberID: intervals},
		Breaks: map[uint]map[string][]string{
			in.BarberID: {dateStr: breakClocks},
		},
		Exceptions:             exceptions,
		BarberIDs:              []uint{in.BarberID},
		GapMinutes:             gap,
		ServiceDurationMinutes: duration,
		Now:                    in.Now,
	})
	if err != nil {
		return nil, err
	}

	free := make([]FreeSlot, 0)
	for _, slot := range out[in.BarberID][dateStr] {
		free = append(free, FreeSlot{
			Start: slot.Start.Format("15:04"),
			End:   slot.End.Format("15:04"),
		})
	}

	if payload, err := json.Marshal(free); err == nil {
		uc.cache.Set(ctx, in.BarberID, dateStr, duration, gap, payload)
	}

	return free, nil
}
