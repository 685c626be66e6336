package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/slots"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ------------------------------
// Fake repository
// ------------------------------

type fakeRepo struct {
	barbers  map[uint]*models.Barber
	services map[uint]*models.Service
	minutes  map[int64]int

	countAt   int64
	createErr error
	created   *models.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:  map[uint]*models.Barber{1: {ID: 1, Name: "Mikko"}},
		services: map[uint]*models.Service{10: {ID: 10, Name: "Leikkaus", EstimatedMinutes: 30}},
		minutes:  map[int64]int{10: 30, 11: 15},
	}
}

func (r *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	if b, ok := r.barbers[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ServiceMinutesByIDs(_ context.Context, ids []int64) (map[int64]int, error) {
	out := map[int64]int{}
	for _, id := range ids {
		if m, ok := r.minutes[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func (r *fakeRepo) CountBookingsAt(_ context.Context, _ uint, _ time.Time) (int64, error) {
	return r.countAt, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	b.ID = 1
	r.created = b
	return nil
}

func (r *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	if r.created != nil && r.created.ID == id {
		return r.created, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) SaveBooking(_ context.Context, b *models.Booking) error {
	r.created = b
	return nil
}

// Não usados pelos casos de teste abaixo

func (r *fakeRepo) ServiceIDsByNames(context.Context, []string) ([]uint, error) {
	panic("unused")
}
func (r *fakeRepo) BarbersForServices(context.Context, []uint) ([]models.Barber, error) {
	panic("unused")
}
func (r *fakeRepo) PriceTotalsByBarber(context.Context, []uint) (map[uint]float64, error) {
	panic("unused")
}
func (r *fakeRepo) Schedules(context.Context) (map[uint]slots.DaySchedule, error) {
	panic("unused")
}
func (r *fakeRepo) AvailabilityWindows(context.Context) (map[uint]slots.DateRange, error) {
	panic("unused")
}
func (r *fakeRepo) BookingIntervals(context.Context, time.Time, time.Time) (map[uint][]slots.BookingInterval, error) {
	panic("unused")
}
func (r *fakeRepo) BreakTimes(context.Context, time.Time, time.Time) (map[uint]map[string][]string, error) {
	panic("unused")
}
func (r *fakeRepo) Exceptions(context.Context, time.Time, time.Time) (map[string]map[uint]slots.Exception, error) {
	panic("unused")
}
func (r *fakeRepo) ScheduleFor(context.Context, uint) (*models.BarberSchedule, error) {
	panic("unused")
}
func (r *fakeRepo) ExceptionFor(context.Context, uint, time.Time) (*models.BarberException, error) {
	panic("unused")
}
func (r *fakeRepo) BreaksOn(context.Context, uint, time.Time) ([]models.BarberBreak, error) {
	panic("unused")
}
func (r *fakeRepo) BookingsOn(context.Context, uint, time.Time) ([]domain.WithDuration, error) {
	panic("unused")
}
func (r *fakeRepo) BookingsFrom(context.Context, uint, time.Time) ([]domain.WithDuration, error) {
	panic("unused")
}

var _ domain.Repository = (*fakeRepo)(nil)

// ------------------------------
// Helpers
// ------------------------------

func newCreateUC(repo *fakeRepo) *Create {
	return NewCreate(repo, nil, cache.NewSlotCache("", "", 0), nil)
}

func validInput() CreateInput {
	return CreateInput{
		BarberID:        1,
		ServiceID:       10,
		CustomerName:    "Antti Korhonen",
		AppointmentTime: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
		Price:           35,
	}
}

// ------------------------------
// Tests
// ------------------------------

func TestCreateBooking_Success(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	out, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, out.Booking)

	assert.NotEmpty(t, out.Booking.Reference)
	assert.Equal(t, uint(1), out.Booking.BarberID)
	assert.Equal(t, repo.created, out.Booking)
	assert.Empty(t, out.PaymentURL)
}

func TestCreateBooking_BarberNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	in := validInput()
	in.BarberID = 99

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestCreateBooking_UnknownExtraService(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	in := validInput()
	in.Extra = []int64{11, 999}

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
	assert.Nil(t, repo.created)
}

func TestCreateBooking_SlotTakenOnPreCheck(t *testing.T) {
	repo := newFakeRepo()
	repo.countAt = 1
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
	assert.Nil(t, repo.created)
}

// A corrida check-then-insert é fechada pelo índice único: quando dois
// pedidos passam pela checagem antecipada, o segundo insert falha com
// SQLSTATE 23505 e vira o mesmo erro de negócio.
func TestCreateBooking_SlotTakenOnInsert(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "uq_barber_slot"}
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}

	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("create booking: %w", pgErr)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(fmt.Errorf("boom")))
}
