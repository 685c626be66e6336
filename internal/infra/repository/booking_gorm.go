package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/slots"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const dateLayout = "2006-01-02"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *BookingGormRepository) ServiceMinutesByIDs(
	ctx context.Context,
	ids []int64,
) (map[int64]int, error) {

	minutes := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return minutes, nil
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}

	for _, s := range services {
		minutes[int64(s.ID)] = s.EstimatedMinutes
	}
	return minutes, nil
}

func (r *BookingGormRepository) ServiceIDsByNames(
	ctx context.Context,
	names []string,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("name IN ?", names).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *BookingGormRepository) BarbersForServices(
	ctx context.Context,
	serviceIDs []uint,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Distinct("barbers.*").
		Joins("JOIN barber_service_prices bsp ON bsp.barber_id = barbers.id").
		Where("bsp.service_id IN ?", serviceIDs).
		Order("barbers.id ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *BookingGormRepository) PriceTotalsByBarber(
	ctx context.Context,
	serviceIDs []uint,
) (map[uint]float64, error) {

	var rows []struct {
		BarberID uint
		Total    float64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.BarberServicePrice{}).
		Select("barber_id, SUM(price) AS total").
		Where("service_id IN ?", serviceIDs).
		Group("barber_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[uint]float64, len(rows))
	for _, row := range rows {
		totals[row.BarberID] = row.Total
	}
	return totals, nil
}

// --------------------------------------------------
// Entradas do motor de slots
// --------------------------------------------------

func (r *BookingGormRepository) Schedules(
	ctx context.Context,
) (map[uint]slots.DaySchedule, error) {

	var schedules []models.BarberSchedule
	if err := r.db.WithContext(ctx).Find(&schedules).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]slots.DaySchedule, len(schedules))
	for _, s := range schedules {
		out[s.BarberID] = slots.DaySchedule{Start: s.StartTime, End: s.EndTime}
	}
	return out, nil
}

func (r *BookingGormRepository) AvailabilityWindows(
	ctx context.Context,
) (map[uint]slots.DateRange, error) {

	var windows []models.BarberAvailability
	if err := r.db.WithContext(ctx).Find(&windows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]slots.DateRange, len(windows))
	for _, w := range windows {
		out[w.BarberID] = slots.DateRange{Start: w.StartDate, End: w.EndDate}
	}
	return out, nil
}

func (r *BookingGormRepository) BookingIntervals(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (map[uint][]slots.BookingInterval, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("appointment_time >= ? AND appointment_time < ?", from, to).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	withDur, err := r.withDurations(ctx, bookings)
	if err != nil {
		return nil, err
	}

	out := make(map[uint][]slots.BookingInterval)
	for _, b := range withDur {
		out[b.BarberID] = append(out[b.BarberID], slots.BookingInterval{
			Start:           b.AppointmentTime,
			DurationMinutes: b.TotalMinutes,
		})
	}
	return out, nil
}

func (r *BookingGormRepository) BreakTimes(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (map[uint]map[string][]string, error) {

	var breaks []models.BarberBreak
	if err := r.db.WithContext(ctx).
		Where("break_date >= ? AND break_date <= ?", from, to).
		Find(&breaks).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]map[string][]string)
	for _, b := range breaks {
		dateStr := b.BreakDate.Format(dateLayout)
		if out[b.BarberID] == nil {
			out[b.BarberID] = make(map[string][]string)
		}
		out[b.BarberID][dateStr] = append(out[b.BarberID][dateStr], b.BreakTime)
	}
	return out, nil
}

func (r *BookingGormRepository) Exceptions(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (map[string]map[uint]slots.Exception, error) {

	var exceptions []models.BarberException
	if err := r.db.WithContext(ctx).
		Where("exception_date >= ? AND exception_date <= ?", from, to).
		Find(&exceptions).Error; err != nil {
		return nil, err
	}

	out := make(map[string]map[uint]slots.Exception)
	for _, e := range exceptions {
		dateStr := e.ExceptionDate.Format(dateLayout)
		if out[dateStr] == nil {
			out[dateStr] = make(map[uint]slots.Exception)
		}
		out[dateStr][e.BarberID] = slots.Exception{
			Off:   e.IsOff,
			Start: e.CustomStartTime,
			End:   e.CustomEndTime,
		}
	}
	return out, nil
}

// --------------------------------------------------
// Agenda do barbeiro
// --------------------------------------------------

func (r *BookingGormRepository) ScheduleFor(
	ctx context.Context,
	barberID uint,
) (*models.BarberSchedule, error) {

	var schedule models.BarberSchedule
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		First(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ExceptionFor retorna nil (sem erro) quando não há exceção para a data
func (r *BookingGormRepository) ExceptionFor(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (*models.BarberException, error) {

	var exception models.BarberException
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND exception_date = ?", barberID, date).
		First(&exception).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exception, nil
}

func (r *BookingGormRepository) BreaksOn(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.BarberBreak, error) {

	var breaks []models.BarberBreak
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND break_date = ?", barberID, date).
		Order("break_time ASC").
		Find(&breaks).Error; err != nil {
		return nil, err
	}
	return breaks, nil
}

func (r *BookingGormRepository) BookingsOn(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]domain.WithDuration, error) {

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND appointment_time >= ? AND appointment_time < ?",
			barberID, dayStart, dayEnd,
		).
		Order("appointment_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return r.withDurations(ctx, bookings)
}

func (r *BookingGormRepository) BookingsFrom(
	ctx context.Context,
	barberID uint,
	from time.Time,
) ([]domain.WithDuration, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND appointment_time >= ?", barberID, from).
		Order("appointment_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return r.withDurations(ctx, bookings)
}

// withDurations agrega a duração total (principal + extras) de cada booking
func (r *BookingGormRepository) withDurations(
	ctx context.Context,
	bookings []models.Booking,
) ([]domain.WithDuration, error) {

	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, int64(b.ServiceID))
		ids = append(ids, b.Extra...)
	}

	minutes, err := r.ServiceMinutesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.WithDuration, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, domain.WithDuration{
			Booking: b,
			TotalMinutes: domain.TotalDurationMinutes(
				minutes[int64(b.ServiceID)],
				b.Extra,
				minutes,
			),
		})
	}
	return out, nil
}

// --------------------------------------------------
// Booking (criação / atualização)
// --------------------------------------------------

func (r *BookingGormRepository) CountBookingsAt(
	ctx context.Context,
	barberID uint,
	at time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("barber_id = ? AND appointment_time = ?", barberID, at).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) SaveBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
