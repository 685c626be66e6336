package booking

import (
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Booking com a duração total já agregada (serviço principal + extras)
type WithDuration struct {
	models.Booking
	TotalMinutes int `json:"total_minutes"`
}

// TotalDurationMinutes soma a duração estimada do serviço principal com a de
// cada serviço extra. Cada extra conta individualmente, sem deduplicação; um
// id sem correspondência no mapa não contribui.
func TotalDurationMinutes(primaryMinutes int, extraIDs []int64, minutesByService map[int64]int) int {
	total := primaryMinutes
	for _, id := range extraIDs {
		total += minutesByService[id]
	}
	return total
}
