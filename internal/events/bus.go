package events

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrNilEvent is returned when publishing a nil event.
var ErrNilEvent = errors.New("events: nil event")

// Bus fans events out to subscribers. Each subscriber gets a buffered
// channel; when it is full the event is dropped for that subscriber
// rather than blocking the publisher.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool
	logger *log.Logger
}

// NewBus creates an empty bus. A nil logger discards output.
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bus{
		subs:   make(map[int]chan Event),
		logger: logger,
	}
}

// Subscribe registers a subscriber with the given channel buffer.
// Call the returned function to unsubscribe; it closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Publish delivers ev to every subscriber and returns how many received it.
// Nil events and events with missing payloads are refused.
func (b *Bus) Publish(ev Event) (int, error) {
	if ev == nil {
		return 0, ErrNilEvent
	}
	if v, ok := ev.(interface{ validate() error }); ok {
		if err := v.validate(); err != nil {
			return 0, err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for id, ch := range b.subs {
		select {
		case ch <- ev:
			delivered++
		default:
			b.logger.Warn("subscriber buffer full, dropping event", "subscriber", id)
		}
	}
	return delivered, nil
}

// Close unsubscribes everyone.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
