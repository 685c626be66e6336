package slots

import (
	"errors"
	"time"
)

// ErrInvalidScheduleData indica horário malformado vindo do cadastro
// (expediente ou exceção). Dado inválido nunca derruba o cálculo inteiro
// silenciosamente: o chamador recebe o erro tipado.
var ErrInvalidScheduleData = errors.New("invalid schedule data")

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Expediente padrão (hora do dia, formato HH:MM)
type DaySchedule struct {
	Start string
	End   string
}

// Janela de datas inclusiva
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Booking já com a duração total agregada (serviço principal + extras)
type BookingInterval struct {
	Start           time.Time
	DurationMinutes int
}

// Exceção de um dia: folga ou expediente customizado
type Exception struct {
	Off   bool
	Start string
	End   string
}

type Input struct {
	// barber_id → expediente padrão
	Schedules map[uint]DaySchedule

	// barber_id → janela de datas; ausente ⇒ [hoje, hoje+10 dias]
	Availability map[uint]DateRange

	// barber_id → bookings existentes (qualquer ordem)
	Bookings map[uint][]BookingInterval

	// barber_id → data "2006-01-02" → horários HH:MM de pausa
	Breaks map[uint]map[string][]string

	// data "2006-01-02" → barber_id → exceção
	Exceptions map[string]map[uint]Exception

	// Subconjunto a calcular; vazio ⇒ todos os barbeiros com expediente
	BarberIDs []uint

	// Passo da caminhada (e tamanho padrão da pausa); <= 0 ⇒ 15
	GapMinutes int

	// Duração de uma unidade de pausa; <= 0 ⇒ GapMinutes
	BreakMinutes int

	// Duração que precisa caber a partir de cada candidato; <= 0 ⇒ GapMinutes
	ServiceDurationMinutes int

	// Referência de "agora" — injetada para manter o motor puro
	Now time.Time
}
