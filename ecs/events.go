package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventTypeCollision tags events whose Data is a CollisionEvent.
const EventTypeCollision = "collision"

// CollisionEventKind identifies collision event types.
type CollisionEventKind string

const (
	CollisionEventBegin CollisionEventKind = "begin"
	CollisionEventEnd   CollisionEventKind = "end"
)

// CollisionEvent is emitted when an entity's colliding flag changes.
type CollisionEvent struct {
	Entity Entity
	Other  Entity
	Kind   CollisionEventKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// CollisionEvents drains the queue and returns only the collision events,
// dropping everything else.
func (q *EventQueue) CollisionEvents() []CollisionEvent {
	var out []CollisionEvent
	for _, evt := range q.Drain() {
		if ce, ok := evt.Data.(CollisionEvent); ok && evt.Type == EventTypeCollision {
			out = append(out, ce)
		}
	}
	return out
}
