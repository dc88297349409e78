package selection

// Event names as seen by the host.
const (
	EventInput  = "input"
	EventAdd    = "add"
	EventRemove = "remove"
)

// Event is an outbound notification produced by Model.Toggle.
type Event interface {
	Name() string
}

// Input carries the replaced selection: the bare option (or nil) in single
// mode, the full ordered sequence in multiple mode.
type Input struct {
	Value any
}

// Add reports an option appended at Index in multiple mode.
type Add struct {
	Index int
	Value any
}

// Remove reports the slice spliced out at Index in multiple mode.
type Remove struct {
	Index int
	Value []any
}

func (Input) Name() string  { return EventInput }
func (Add) Name() string    { return EventAdd }
func (Remove) Name() string { return EventRemove }

// Listener receives events in emission order.
type Listener func(Event)
