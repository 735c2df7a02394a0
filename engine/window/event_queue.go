package window

// EventQueue is a FIFO of pending window events. Platform callbacks push into it and the
// render loop drains it through PollEvent. It is owned by the event pump goroutine and is
// not safe for concurrent use.
type EventQueue struct {
	events []Event
}

// NewEventQueue creates an empty queue.
//
// Returns:
//   - *EventQueue: the queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event.
//
// Parameters:
//   - e: the event to enqueue
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Pop removes the oldest event without blocking.
//
// Returns:
//   - Event: the oldest event, nil when the queue is empty
//   - bool: false when the queue is empty
func (q *EventQueue) Pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	e := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = q.events[:0:0]
	}
	return e, true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}
