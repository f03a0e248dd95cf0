package events

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/KirkDiggler/spell-duel/internal/logging"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// Bus manages event distribution
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]EventListener),
	}
}

// Subscribe adds a listener for specific event types
func (b *Bus) Subscribe(eventType EventType, listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], listener)
	sortByPriority(b.listeners[eventType])

	logging.Debug("event listener subscribed", logging.Fields{
		"listener": listener.ID(),
		"event":    string(eventType),
		"priority": listener.Priority(),
	})
}

// Emit sends an event to every listener in priority order. A failing
// listener does not stop the ones after it; all failures are returned joined.
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.GetType()]))
	copy(listeners, b.listeners[event.GetType()])
	b.mu.RUnlock()

	var errs []error
	for _, listener := range listeners {
		if event.IsCancelled() {
			logging.Debug("event cancelled, stopping propagation", logging.Fields{
				"event":    string(event.GetType()),
				"listener": listener.ID(),
			})
			break
		}

		if err := listener.HandleEvent(event); err != nil {
			errs = append(errs, fmt.Errorf("listener %s failed: %w", listener.ID(), err))
		}
	}

	return errors.Join(errs...)
}

// sortByPriority keeps subscription order among equal priorities
func sortByPriority(listeners []EventListener) {
	sort.SliceStable(listeners, func(i, j int) bool {
		return listeners[i].Priority() < listeners[j].Priority()
	})
}
