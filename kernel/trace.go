package kernel

type EventKind uint8

const (
	EventPend EventKind = iota
	EventTaskEnter
	EventTaskExit
	EventClaimEnter
	EventClaimExit
	EventIdle
)

func (k EventKind) String() string {
	switch k {
	case EventPend:
		return "pend"
	case EventTaskEnter:
		return "enter"
	case EventTaskExit:
		return "exit"
	case EventClaimEnter:
		return "claim"
	case EventClaimExit:
		return "release"
	case EventIdle:
		return "idle"
	}
	return "unknown"
}

// Event is one scheduling step. Task is the task executing when the event
// happened, empty for idle and init. Priority is the effective priority
// after the event.
type Event struct {
	Kind     EventKind
	Task     string
	Resource string
	IRQ      IRQ
	Priority Priority
}

type Tracer interface {
	Trace(Event)
}

type TracerFunc func(Event)

func (f TracerFunc) Trace(e Event) {
	f(e)
}
