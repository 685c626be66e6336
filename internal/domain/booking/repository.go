package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/slots"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Catálogo --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	ServiceMinutesByIDs(
		ctx context.Context,
		ids []int64,
	) (map[int64]int, error)

	ServiceIDsByNames(
		ctx context.Context,
		names []string,
	) ([]uint, error)

	BarbersForServices(
		ctx context.Context,
		serviceIDs []uint,
	) ([]models.Barber, error)

	PriceTotalsByBarber(
		ctx context.Context,
		serviceIDs []uint,
	) (map[uint]float64, error)

	// -------- Entradas do motor de slots (snapshots somente-leitura) --------
	Schedules(
		ctx context.Context,
	) (map[uint]slots.DaySchedule, error)

	AvailabilityWindows(
		ctx context.Context,
	) (map[uint]slots.DateRange, error)

	BookingIntervals(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) (map[uint][]slots.BookingInterval, error)

	BreakTimes(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) (map[uint]map[string][]string, error)

	Exceptions(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) (map[string]map[uint]slots.Exception, error)

	// -------- Agenda do barbeiro --------
	ScheduleFor(
		ctx context.Context,
		barberID uint,
	) (*models.BarberSchedule, error)

	ExceptionFor(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) (*models.BarberException, error)

	BreaksOn(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]models.BarberBreak, error)

	BookingsOn(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]WithDuration, error)

	BookingsFrom(
		ctx context.Context,
		barberID uint,
		from time.Time,
	) ([]WithDuration, error)

	// -------- Booking (criação / atualização) --------
	CountBookingsAt(
		ctx context.Context,
		barberID uint,
		at time.Time,
	) (int64, error)

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	SaveBooking(
		ctx context.Context,
		b *models.Booking,
	) error
}
