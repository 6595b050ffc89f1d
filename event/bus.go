package event

import (
	"errors"
	"sort"
	"sync"
)

// ErrInvalidState is returned when an activity state cannot be parsed.
var ErrInvalidState = errors.New("invalid activity state")

// Handler receives events from a Bus.
type Handler func(Event)

// Bus fans published events out to subscribers.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]subscription
	exec     func(func())
}

type subscription struct {
	name    string
	handler Handler
}

// NewBus creates a Bus. Deliveries are passed to exec, normally a work queue's
// Submit, so handlers share the queue's timeline. A nil exec delivers inline.
func NewBus(exec func(func())) *Bus {
	b := new(Bus)
	b.handlers = make(map[int]subscription)
	b.exec = exec
	return b
}

// Subscribe registers handler under name and returns a function that removes it.
func (b *Bus) Subscribe(name string, handler Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = subscription{name: name, handler: handler}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.handlers, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers ev to every current subscriber in subscription order.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	b.mu.RUnlock()
	sort.Ints(ids)

	deliver := func() {
		for _, id := range ids {
			b.mu.RLock()
			sub, ok := b.handlers[id]
			b.mu.RUnlock()
			if !ok {
				continue
			}
			sub.handler(ev)
		}
	}

	if b.exec == nil {
		deliver()
		return
	}
	b.exec(deliver)
}

// Subscribers returns the number of registered handlers.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
