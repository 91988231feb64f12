package game

type EventType int

const (
	EventGateTriggered EventType = iota
	EventGatePassed
	EventGraze
	EventTumble
	EventCrash
	EventObstacleHit
	EventCorrectAnswer
	EventWrongAnswer
	EventFinish
)

type Event struct {
	Type      EventType
	GateIndex int // -1 when not gate-related
	X, Z      float64
}

type EventHandler func(Event)

// EventBus is a synchronous dispatcher injected into the controller, so the
// core stays free of module-level listener state.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
