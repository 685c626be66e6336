package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func bookingAt(day time.Time, hour, min, totalMinutes int) domain.WithDuration {
	return domain.WithDuration{
		Booking: models.Booking{
			AppointmentTime: time.Date(
				day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location(),
			),
		},
		TotalMinutes: totalMinutes,
	}
}

func TestBreakConflictsWithBookings(t *testing.T) {
	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	// booking das 10:00 às 10:45
	bookings := []domain.WithDuration{bookingAt(day, 10, 0, 45)}

	// dentro do booking
	assert.True(t, breakConflictsWithBookings(day, "10:00", 15, bookings))
	assert.True(t, breakConflictsWithBookings(day, "10:30", 15, bookings))

	// unidade de pausa invade o começo do booking
	assert.True(t, breakConflictsWithBookings(day, "09:50", 15, bookings))

	// intervalos semiabertos: pausa que termina exatamente quando o
	// booking começa, ou começa exatamente quando ele termina, não conflita
	assert.False(t, breakConflictsWithBookings(day, "09:45", 15, bookings))
	assert.False(t, breakConflictsWithBookings(day, "10:45", 15, bookings))

	// longe do booking
	assert.False(t, breakConflictsWithBookings(day, "14:00", 15, bookings))

	// dia sem bookings aceita qualquer horário
	assert.False(t, breakConflictsWithBookings(day, "10:00", 15, nil))
}

func TestBreakConflictsWithBookings_AggregatedDuration(t *testing.T) {
	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	// serviço de 30min + extras somando 60min no total
	bookings := []domain.WithDuration{bookingAt(day, 9, 0, 60)}

	// 09:45 ainda cai dentro do booking estendido pelos extras
	assert.True(t, breakConflictsWithBookings(day, "09:45", 15, bookings))
	assert.False(t, breakConflictsWithBookings(day, "10:00", 15, bookings))
}
