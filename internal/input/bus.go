// Package input delivers key presses from the terminal to subscribers.
package input

// Handler receives a key identifier such as "ArrowUp" or "Enter".
type Handler func(key string)

// Source is a keyboard input source.
type Source interface {
	// Subscribe registers h and returns a func that removes it.
	Subscribe(h Handler) (unsubscribe func())
}

// Bus is a synchronous Source. Publish calls every subscriber in
// subscription order on the caller's goroutine.
type Bus struct {
	next     int
	handlers map[int]Handler
	order    []int
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: map[int]Handler{}}
}

// Subscribe implements Source. Calling the returned func more than once is harmless.
func (b *Bus) Subscribe(h Handler) func() {
	b.next++
	id := b.next
	b.handlers[id] = h
	b.order = append(b.order, id)
	return func() {
		if _, ok := b.handlers[id]; !ok {
			return
		}
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish sends key to all current subscribers.
func (b *Bus) Publish(key string) {
	ids := append([]int(nil), b.order...)
	for _, id := range ids {
		if h, ok := b.handlers[id]; ok {
			h(key)
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Bus) Subscribers() int {
	return len(b.handlers)
}
