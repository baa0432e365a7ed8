package pipeline

type State int

const (
	Idle State = iota
	Extracting
	Fetching
	Collating
	Assembling
	Skipped
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Extracting:
		return "extracting"
	case Fetching:
		return "fetching"
	case Collating:
		return "collating"
	case Assembling:
		return "assembling"
	case Skipped:
		return "skipped"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}

	return "unknown"
}

type Kind string

const (
	KindState    Kind = "state"
	KindFetch    Kind = "fetch"
	KindAssemble Kind = "assemble"
	KindInfo     Kind = "info"
)

// Event is a progress notification. State events mark a transition; fetch
// and assemble events carry a 1-based Done counter out of Total.
type Event struct {
	State   State
	Kind    Kind
	Message string
	Done    int
	Total   int
	Index   int
	Size    int64
	Err     error
}

type Notifier interface {
	Notify(Event)
}

type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) {
	f(e)
}
