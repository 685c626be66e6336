package handlers

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// parseDate interpreta YYYY-MM-DD como meia-noite no fuso da barbearia
func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, timezone.Location(timezone.DefaultTimezone))
}

// parseAppointmentTime aceita "YYYY-MM-DD HH:MM" (fuso da barbearia)
// ou RFC 3339 com offset explícito
func parseAppointmentTime(value string) (time.Time, error) {
	loc := timezone.Location(timezone.DefaultTimezone)

	if t, err := time.ParseInLocation("2006-01-02 15:04", value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", value)
}

// validClock aceita apenas HH:MM
func validClock(value string) bool {
	_, err := time.Parse(clockLayout, value)
	return err == nil
}
