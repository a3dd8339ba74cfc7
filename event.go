package hydrostat

const (
	ON_SETTLE EventType = iota
	ON_DISTURB
	ON_SUBMERGE
	ON_SURFACE
)

type EventType uint8

// immersion tracks how much of a body sits below the surface.
type immersion uint8

const (
	immersionNone immersion = iota
	immersionPartial
	immersionFull
)

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// SettleEvent fires when a body reaches hydrostatic equilibrium and holds it
// long enough to count as settled.
type SettleEvent struct {
	Body *Body
}

func (e SettleEvent) Type() EventType { return ON_SETTLE }

// DisturbEvent fires when a settled body leaves equilibrium again, e.g.
// after a load or mesh change.
type DisturbEvent struct {
	Body *Body
}

func (e DisturbEvent) Type() EventType { return ON_DISTURB }

// SubmergeEvent fires when a body becomes fully submerged.
type SubmergeEvent struct {
	Body *Body
}

func (e SubmergeEvent) Type() EventType { return ON_SUBMERGE }

// SurfaceEvent fires when a body leaves the water entirely.
type SurfaceEvent struct {
	Body *Body
}

func (e SurfaceEvent) Type() EventType { return ON_SURFACE }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Per-body state tracking for transition detection
	settleStates    map[*Body]bool
	immersionStates map[*Body]immersion
}

func NewEvents() Events {
	return Events{
		listeners:       make(map[EventType][]EventListener),
		buffer:          make([]Event, 0, 64),
		settleStates:    make(map[*Body]bool),
		immersionStates: make(map[*Body]immersion),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// track records a body's current state so later transitions are detected
// relative to the moment it joined the world.
func (e *Events) track(body *Body) {
	e.settleStates[body] = body.IsSettled
	e.immersionStates[body] = body.immersionState()
}

// forget drops tracked state for a removed body
func (e *Events) forget(body *Body) {
	delete(e.settleStates, body)
	delete(e.immersionStates, body)
}

// processStateEvents compares each body's settle and immersion state against
// the tracked state and buffers transition events. Should be called once per
// tick, after all bodies have stepped. The first observation of a body only
// records its state, so attaching an already-floating body emits nothing.
func (e *Events) processStateEvents(bodies []*Body) {
	for _, body := range bodies {
		settled, tracked := e.settleStates[body]
		if !tracked {
			e.settleStates[body] = body.IsSettled
		} else if !settled && body.IsSettled {
			e.buffer = append(e.buffer, SettleEvent{Body: body})
			e.settleStates[body] = true
		} else if settled && !body.IsSettled {
			e.buffer = append(e.buffer, DisturbEvent{Body: body})
			e.settleStates[body] = false
		}

		state := body.immersionState()
		previous, tracked := e.immersionStates[body]
		if !tracked {
			e.immersionStates[body] = state
			continue
		}
		if state == previous {
			continue
		}

		switch state {
		case immersionFull:
			e.buffer = append(e.buffer, SubmergeEvent{Body: body})
		case immersionNone:
			e.buffer = append(e.buffer, SurfaceEvent{Body: body})
		}
		e.immersionStates[body] = state
	}
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
