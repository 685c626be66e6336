package slots

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func at(d, hour, min int) time.Time {
	return time.Date(2026, 3, d, hour, min, 0, 0, time.UTC)
}

func baseInput() Input {
	return Input{
		Schedules:              map[uint]DaySchedule{1: {Start: "09:00", End: "17:00"}},
		Availability:           map[uint]DateRange{1: {Start: day(10), End: day(10)}},
		GapMinutes:             15,
		ServiceDurationMinutes: 30,
		Now:                    at(2, 12, 0),
	}
}

func starts(slots []TimeSlot) []time.Time {
	out := make([]time.Time, len(slots))
	for i, s := range slots {
		out[i] = s.Start
	}
	return out
}

func TestGenerate_AroundExistingBooking(t *testing.T) {
	in := baseInput()
	in.Bookings = map[uint][]BookingInterval{
		1: {{Start: at(10, 10, 0), DurationMinutes: 30}},
	}

	out, err := Generate(in)
	require.NoError(t, err)

	slots := out[1]["2026-03-10"]
	require.NotEmpty(t, slots)

	// Antes do booking: 09:00, 09:15 e 09:30 (termina exatamente 10:00,
	// intervalo semiaberto ⇒ não conflita). 09:45 e 10:00/10:15 conflitam.
	assert.Equal(t, at(10, 9, 0), slots[0].Start)
	assert.Equal(t, at(10, 9, 15), slots[1].Start)
	assert.Equal(t, at(10, 9, 30), slots[2].Start)

	// Retoma em 10:30
	assert.Equal(t, at(10, 10, 30), slots[3].Start)

	// Último slot: 16:30–17:00 encaixa exatamente na janela
	last := slots[len(slots)-1]
	assert.Equal(t, at(10, 16, 30), last.Start)
	assert.Equal(t, at(10, 17, 0), last.End)

	for _, s := range slots {
		assert.NotEqual(t, at(10, 9, 45), s.Start)
		assert.NotEqual(t, at(10, 10, 0), s.Start)
		assert.NotEqual(t, at(10, 10, 15), s.Start)
	}

	// 31 candidatos entre 09:00 e 16:30, três excluídos pelo booking
	assert.Len(t, slots, 28)
}

func TestGenerate_NoOverlapAndContainment(t *testing.T) {
	in := baseInput()
	in.Bookings = map[uint][]BookingInterval{
		1: {
			{Start: at(10, 10, 0), DurationMinutes: 45},
			{Start: at(10, 14, 30), DurationMinutes: 60},
		},
	}
	in.Breaks = map[uint]map[string][]string{
		1: {"2026-03-10": {"12:00", "12:15"}},
	}

	out, err := Generate(in)
	require.NoError(t, err)

	windowStart := at(10, 9, 0)
	windowEnd := at(10, 17, 0)

	busy := [][2]time.Time{
		{at(10, 10, 0), at(10, 10, 45)},
		{at(10, 14, 30), at(10, 15, 30)},
		{at(10, 12, 0), at(10, 12, 15)},
		{at(10, 12, 15), at(10, 12, 30)},
	}

	for _, s := range out[1]["2026-03-10"] {
		assert.False(t, s.Start.Before(windowStart), "slot %v starts before window", s.Start)
		assert.False(t, s.End.After(windowEnd), "slot %v ends after window", s.End)

		// Alinhado à grade de 15 minutos a partir do início da janela
		assert.Zero(t, s.Start.Sub(windowStart)%(15*time.Minute))

		for _, b := range busy {
			overlap := s.Start.Before(b[1]) && b[0].Before(s.End)
			assert.False(t, overlap, "slot %v-%v overlaps busy %v-%v", s.Start, s.End, b[0], b[1])
		}
	}
}

func TestGenerate_DayOffException(t *testing.T) {
	in := baseInput()
	in.Exceptions = map[string]map[uint]Exception{
		"2026-03-10": {1: {Off: true}},
	}

	out, err := Generate(in)
	require.NoError(t, err)

	slots, ok := out[1]["2026-03-10"]
	require.True(t, ok)
	assert.Empty(t, slots)
}

func TestGenerate_CustomHoursException(t *testing.T) {
	in := baseInput()
	in.Exceptions = map[string]map[uint]Exception{
		"2026-03-10": {1: {Start: "13:00", End: "15:00"}},
	}

	out, err := Generate(in)
	require.NoError(t, err)

	slots := out[1]["2026-03-10"]
	require.NotEmpty(t, slots)
	assert.Equal(t, at(10, 13, 0), slots[0].Start)
	assert.Equal(t, at(10, 14, 30), slots[len(slots)-1].Start)
}

func TestGenerate_SundayIsARegularDay(t *testing.T) {
	in := baseInput()
	// 2026-03-08 é domingo
	in.Availability = map[uint]DateRange{1: {Start: day(8), End: day(8)}}

	out, err := Generate(in)
	require.NoError(t, err)
	assert.NotEmpty(t, out[1]["2026-03-08"])
}

func TestGenerate_TodayRoundsUpFromNow(t *testing.T) {
	in := baseInput()
	in.Availability = map[uint]DateRange{1: {Start: day(2), End: day(2)}}
	in.Now = at(2, 10, 7)

	out, err := Generate(in)
	require.NoError(t, err)

	slots := out[1]["2026-03-02"]
	require.NotEmpty(t, slots)
	assert.Equal(t, at(2, 10, 15), slots[0].Start)

	for _, s := range slots {
		assert.False(t, s.Start.Before(in.Now))
	}
}

func TestGenerate_TodayAlignedNowIsKept(t *testing.T) {
	in := baseInput()
	in.Availability = map[uint]DateRange{1: {Start: day(2), End: day(2)}}
	in.Now = at(2, 10, 30)

	out, err := Generate(in)
	require.NoError(t, err)

	slots := out[1]["2026-03-02"]
	require.NotEmpty(t, slots)
	assert.Equal(t, at(2, 10, 30), slots[0].Start)
}

// Gap que não divide 60 (ex.: 90min): a grade parte do início da janela,
// então o primeiro slot de hoje continua alinhado a 09:00 + n*90min
func TestGenerate_TodayWithOddGapStaysOnWindowGrid(t *testing.T) {
	in := baseInput()
	in.Availability = map[uint]DateRange{1: {Start: day(2), End: day(2)}}
	in.GapMinutes = 90
	in.ServiceDurationMinutes = 90
	in.Now = at(2, 10, 7)

	out, err := Generate(in)
	require.NoError(t, err)

	slots := out[1]["2026-03-02"]
	assert.Equal(t, []time.Time{
		at(2, 10, 30),
		at(2, 12, 0),
		at(2, 13, 30),
		at(2, 15, 0),
	}, starts(slots))
}

func TestGenerate_MissingScheduleFailsClosed(t *testing.T) {
	in := baseInput()
	in.BarberIDs = []uint{99}

	out, err := Generate(in)
	require.NoError(t, err)

	days := out[99]
	require.NotEmpty(t, days)
	for date, slots := range days {
		assert.Empty(t, slots, "expected no slots on %s", date)
	}
}

func TestGenerate_MalformedExceptionTime(t *testing.T) {
	in := baseInput()
	in.Exceptions = map[string]map[uint]Exception{
		"2026-03-10": {1: {Start: "9h30", End: "17:00"}},
	}

	_, err := Generate(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidScheduleData))
}

func TestGenerate_MalformedBreakTime(t *testing.T) {
	in := baseInput()
	in.Breaks = map[uint]map[string][]string{
		1: {"2026-03-10": {"meio-dia"}},
	}

	_, err := Generate(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidScheduleData))
}

func TestGenerate_BreakUnitBlocksOverlappingSlots(t *testing.T) {
	in := baseInput()
	in.Breaks = map[uint]map[string][]string{
		1: {"2026-03-10": {"10:00"}},
	}

	out, err := Generate(in)
	require.NoError(t, err)

	blocked := map[time.Time]bool{
		// serviço de 30min: 09:45 invade [10:00,10:15), 10:00 idem
		at(10, 9, 45): true,
		at(10, 10, 0): true,
	}

	for _, s := range out[1]["2026-03-10"] {
		assert.False(t, blocked[s.Start], "slot %v should be blocked by break", s.Start)
	}
	assert.Contains(t, starts(out[1]["2026-03-10"]), at(10, 9, 30))
	assert.Contains(t, starts(out[1]["2026-03-10"]), at(10, 10, 15))
}

func TestGenerate_BreakLengthDecoupledFromGap(t *testing.T) {
	in := baseInput()
	in.BreakMinutes = 30
	in.Breaks = map[uint]map[string][]string{
		1: {"2026-03-10": {"10:00"}},
	}

	out, err := Generate(in)
	require.NoError(t, err)

	// Pausa ocupa [10:00, 10:30): com serviço de 30min, 10:15 também cai
	for _, s := range out[1]["2026-03-10"] {
		assert.NotEqual(t, at(10, 10, 15), s.Start)
	}
	assert.Contains(t, starts(out[1]["2026-03-10"]), at(10, 10, 30))
}

func TestGenerate_DefaultAvailabilityWindow(t *testing.T) {
	in := baseInput()
	in.Availability = nil

	out, err := Generate(in)
	require.NoError(t, err)

	// [hoje, hoje+10] inclusivo ⇒ 11 datas
	assert.Len(t, out[1], 11)
	_, hasToday := out[1]["2026-03-02"]
	_, hasLast := out[1]["2026-03-12"]
	assert.True(t, hasToday)
	assert.True(t, hasLast)
}

func TestGenerate_BarberSubset(t *testing.T) {
	in := baseInput()
	in.Schedules[2] = DaySchedule{Start: "08:00", End: "12:00"}
	in.Availability[2] = DateRange{Start: day(10), End: day(10)}
	in.BarberIDs = []uint{2}

	out, err := Generate(in)
	require.NoError(t, err)

	assert.Contains(t, out, uint(2))
	assert.NotContains(t, out, uint(1))
}

func TestGenerate_Idempotent(t *testing.T) {
	in := baseInput()
	in.Bookings = map[uint][]BookingInterval{
		1: {{Start: at(10, 11, 0), DurationMinutes: 45}},
	}

	first, err := Generate(in)
	require.NoError(t, err)
	second, err := Generate(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
