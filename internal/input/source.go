package input

import "time"

type Event struct {
	Key     string
	Pressed bool
	Time    time.Duration // host timestamp, informational only
}

type Handler func(Event)

// Source delivers key events to subscribers. The returned function removes
// the subscription and must be safe to call more than once.
type Source interface {
	Subscribe(h Handler) (unsubscribe func())
}

// Events is a Source fed from any goroutine through Push and dispatched
// on the tick goroutine by Drain, in delivery order.
// Subscribe and Drain must be called from the tick goroutine.
type Events struct {
	c        chan Event
	handlers []subscription
	next     int
}

type subscription struct {
	id int
	h  Handler
}

func NewEvents(size int) *Events {
	return &Events{
		c: make(chan Event, size),
	}
}

func (e *Events) Subscribe(h Handler) func() {
	id := e.next
	e.next++
	e.handlers = append(e.handlers, subscription{id, h})
	return func() {
		for i, sub := range e.handlers {
			if sub.id == id {
				e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
				return
			}
		}
	}
}

// Push queues an event, blocking while the buffer is full.
func (e *Events) Push(ev Event) {
	e.c <- ev
}

// Send queues an event unless done is closed first. It reports whether
// the event was queued.
func (e *Events) Send(ev Event, done <-chan struct{}) bool {
	select {
	case e.c <- ev:
		return true
	case <-done:
		return false
	}
}

// Drain dispatches the events queued so far and returns how many there were.
func (e *Events) Drain() int {
	n := len(e.c)
	for i := 0; i < n; i++ {
		ev := <-e.c
		// subscription order
		for _, sub := range e.handlers {
			sub.h(ev)
		}
	}
	return n
}
