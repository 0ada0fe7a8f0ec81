package ecs

// EventType names a world event.
type EventType string

const (
	// EventOverlap is pushed by physics when the player touches a sensor.
	EventOverlap EventType = "overlap"
)

// Event is a world event payload. Other and Data are optional.
type Event struct {
	Type   EventType
	Entity Entity
	Other  Entity
	Data   any
}

// EventQueue is a FIFO cleared at the end of every scheduler tick.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
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

// DrainType removes and returns the events of type t, keeping the rest in
// order.
func (q *EventQueue) DrainType(t EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
