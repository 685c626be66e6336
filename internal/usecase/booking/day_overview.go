package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// OUTPUT
// ======================================================

type DayBooking struct {
	BookingID    uint    `json:"booking_id"`
	Reference    string  `json:"reference"`
	CustomerName string  `json:"customer_name"`
	ServiceID    uint    `json:"service_id"`
	Start        string  `json:"start"` // HH:MM
	End          string  `json:"end"`
	TotalMinutes int     `json:"total_minutes"`
	Price        float64 `json:"price"`
	Phone        string  `json:"phone,omitempty"`
	Email        string  `json:"email,omitempty"`
}

type DayOverviewOutput struct {
	Date      string               `json:"date"`
	StartTime string               `json:"start_time"`
	EndTime   string               `json:"end_time"`
	IsOff     bool                 `json:"is_off"`
	Bookings  []DayBooking         `json:"bookings"`
	Breaks    []models.BarberBreak `json:"breaks"`
}

// ======================================================
// USE CASE
// ======================================================

// DayOverview monta a visão do dia do barbeiro: janela de atendimento
// já resolvida contra a exceção da data, bookings com duração total e
// as pausas marcadas.
type DayOverview struct {
	repo domain.Repository
}

func NewDayOverview(repo domain.Repository) *DayOverview {
	return &DayOverview{repo: repo}
}

func (uc *DayOverview) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (*DayOverviewOutput, error) {

	out := &DayOverviewOutput{
		Date:      date.Format("2006-01-02"),
		StartTime: "00:00",
		EndTime:   "00:00",
		Bookings:  []DayBooking{},
		Breaks:    []models.BarberBreak{},
	}

	// Sem expediente cadastrado a janela fica fechada (00:00–00:00)
	schedule, err := uc.repo.ScheduleFor(ctx, barberID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if schedule != nil {
		out.StartTime = schedule.StartTime
		out.EndTime = schedule.EndTime
	}

	exception, err := uc.repo.ExceptionFor(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	if exception != nil {
		if exception.IsOff {
			out.IsOff = true
			out.StartTime = "00:00"
			out.EndTime = "00:00"
		} else {
			if exception.CustomStartTime != "" {
				out.StartTime = exception.CustomStartTime
			}
			if exception.CustomEndTime != "" {
				out.EndTime = exception.CustomEndTime
			}
		}
	}

	bookings, err := uc.repo.BookingsOn(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		end := b.AppointmentTime.Add(time.Duration(b.TotalMinutes) * time.Minute)
		out.Bookings = append(out.Bookings, DayBooking{
			BookingID:    b.ID,
			Reference:    b.Reference,
			CustomerName: b.CustomerName,
			ServiceID:    b.ServiceID,
			Start:        b.AppointmentTime.Format("15:04"),
			End:          end.Format("15:04"),
			TotalMinutes: b.TotalMinutes,
			Price:        b.Price,
			Phone:        b.Phone,
			Email:        b.Email,
		})
	}

	breaks, err := uc.repo.BreaksOn(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	out.Breaks = breaks

	return out, nil
}
