package ownedbuf

import (
	"time"

	"github.com/srediag/ownedbuf/api"
)

// EventKind classifies export lifecycle events.
type EventKind uint8

const (
	EventGranted EventKind = iota
	EventDenied
	EventReleased
)

func (k EventKind) String() string {
	switch k {
	case EventGranted:
		return "granted"
	case EventDenied:
		return "denied"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event describes one export lifecycle transition, with the owner's
// bookkeeping as observed immediately after the transition.
type Event struct {
	Kind          EventKind
	Mode          api.ExportMode
	SharedExports int
	Exclusive     bool
	When          time.Time
}

// EventSink receives export lifecycle events. Record is called with the
// owner's lock held and must not call back into the owner.
type EventSink interface {
	Record(Event)
}
