package audit

import "log"

// Ações registradas pelo sistema
const (
	ActionBookingCreated    = "booking_created"
	ActionBookingConflict   = "booking_conflict"
	ActionPriceUpdated      = "booking_price_updated"
	ActionScheduleUpdated   = "schedule_updated"
	ActionExceptionUpserted = "exception_upserted"
	ActionBreakAdded        = "break_added"
	ActionBreakDeleted      = "break_deleted"
	ActionPhotoUploaded     = "photo_uploaded"
)

type Event struct {
	BarberID *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.BarberID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		log.Println("audit queue full, dropping event")
	}
}
