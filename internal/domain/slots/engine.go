package slots

import (
	"fmt"
	"sort"
	"time"
)

const (
	DefaultGapMinutes = 15
	DefaultWindowDays = 10

	dateLayout = "2006-01-02"
)

// Generate calcula os horários livres por barbeiro e por dia.
//
// Puro e determinístico: toda entrada (inclusive o "agora") chega via Input,
// nenhum I/O acontece aqui. Intervalos são semiabertos [início, fim): um slot
// que termina exatamente quando um booking começa NÃO conflita.
//
// Domingos são dias normais — folga só existe via exceção. No dia corrente a
// caminhada parte de "agora" arredondado para cima até o próximo múltiplo de
// GapMinutes.
func Generate(in Input) (map[uint]map[string][]TimeSlot, error) {
	gap := in.GapMinutes
	if gap <= 0 {
		gap = DefaultGapMinutes
	}
	breakMinutes := in.BreakMinutes
	if breakMinutes <= 0 {
		breakMinutes = gap
	}
	durationMinutes := in.ServiceDurationMinutes
	if durationMinutes <= 0 {
		durationMinutes = gap
	}

	step := time.Duration(gap) * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute
	breakLen := time.Duration(breakMinutes) * time.Minute

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	barberIDs := in.BarberIDs
	if len(barberIDs) == 0 {
		barberIDs = make([]uint, 0, len(in.Schedules))
		for id := range in.Schedules {
			barberIDs = append(barberIDs, id)
		}
		sort.Slice(barberIDs, func(i, j int) bool { return barberIDs[i] < barberIDs[j] })
	}

	out := make(map[uint]map[string][]TimeSlot, len(barberIDs))

	for _, barberID := range barberIDs {
		days := make(map[string][]TimeSlot)
		out[barberID] = days

		// Sem expediente cadastrado: janela degenerada 00:00–00:00,
		// zero slots em todas as datas (fail closed, não é erro)
		sched, ok := in.Schedules[barberID]
		if !ok {
			sched = DaySchedule{Start: "00:00", End: "00:00"}
		}

		window := in.Availability[barberID]
		if window.Start.IsZero() {
			window.Start = now
		}
		if window.End.IsZero() {
			window.End = window.Start.AddDate(0, 0, DefaultWindowDays)
		}

		first := atMidnight(window.Start)
		last := atMidnight(window.End)

		for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
			dateStr := date.Format(dateLayout)

			dayStart, dayEnd := sched.Start, sched.End
			if exc, found := in.Exceptions[dateStr][barberID]; found {
				if exc.Off {
					days[dateStr] = []TimeSlot{}
					continue
				}
				dayStart, dayEnd = exc.Start, exc.End
			}

			windowStart, err := atClock(date, dayStart)
			if err != nil {
				return nil, fmt.Errorf("%w: barber %d on %s: start %q",
					ErrInvalidScheduleData, barberID, dateStr, dayStart)
			}
			windowEnd, err := atClock(date, dayEnd)
			if err != nil {
				return nil, fmt.Errorf("%w: barber %d on %s: end %q",
					ErrInvalidScheduleData, barberID, dateStr, dayEnd)
			}

			bookings := bookingsOn(in.Bookings[barberID], date)

			breaks, err := breaksOn(in.Breaks[barberID][dateStr], date)
			if err != nil {
				return nil, fmt.Errorf("%w: barber %d on %s: %v",
					ErrInvalidScheduleData, barberID, dateStr, err)
			}

			cursor := windowStart
			if sameDate(date, now) && cursor.Before(now) {
				cursor = nextOnGrid(windowStart, now, step)
			}

			slots := []TimeSlot{}
			for ; !cursor.Add(duration).After(windowEnd); cursor = cursor.Add(step) {
				slotEnd := cursor.Add(duration)

				if overlapsBooking(cursor, slotEnd, bookings) {
					continue
				}
				if overlapsBreak(cursor, slotEnd, breaks, breakLen) {
					continue
				}

				slots = append(slots, TimeSlot{Start: cursor, End: slotEnd})
			}

			days[dateStr] = slots
		}
	}

	return out, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// atClock combina a data com um horário "HH:MM" (ou "HH:MM:SS")
func atClock(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		parsed, err = time.Parse("15:04:05", clock)
		if err != nil {
			return time.Time{}, err
		}
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	), nil
}

// nextOnGrid devolve o primeiro instante da grade (windowStart + n*step)
// que não fica antes de "from". A grade parte do início da janela, então
// o alinhamento vale para qualquer step, inclusive os que não dividem 60.
// Um instante exatamente na grade é mantido como está.
func nextOnGrid(windowStart, from time.Time, step time.Duration) time.Time {
	delta := from.Sub(windowStart)
	if delta <= 0 {
		return windowStart
	}

	steps := delta / step
	if delta%step != 0 {
		steps++
	}
	return windowStart.Add(steps * step)
}

// bookingsOn filtra os bookings do dia e ordena por horário, sem mutar a entrada
func bookingsOn(all []BookingInterval, date time.Time) []BookingInterval {
	var day []BookingInterval
	for _, b := range all {
		if sameDate(b.Start, date) {
			day = append(day, b)
		}
	}
	sort.Slice(day, func(i, j int) bool { return day[i].Start.Before(day[j].Start) })
	return day
}

func breaksOn(clocks []string, date time.Time) ([]time.Time, error) {
	var breaks []time.Time
	for _, clock := range clocks {
		at, err := atClock(date, clock)
		if err != nil {
			return nil, fmt.Errorf("break %q: %v", clock, err)
		}
		breaks = append(breaks, at)
	}
	return breaks, nil
}

func overlapsBooking(start, end time.Time, bookings []BookingInterval) bool {
	for _, b := range bookings {
		bookingEnd := b.Start.Add(time.Duration(b.DurationMinutes) * time.Minute)
		if start.Before(bookingEnd) && b.Start.Before(end) {
			return true
		}
	}
	return false
}

func overlapsBreak(start, end time.Time, breaks []time.Time, breakLen time.Duration) bool {
	for _, b := range breaks {
		if start.Before(b.Add(breakLen)) && b.Before(end) {
			return true
		}
	}
	return false
}
