// Package events provides event management functionality.
package events

import (
	"sync"
	"time"
)

// EventType represents different event types
type EventType string

const (
	GenerationStarted   EventType = "GENERATION_STARTED"
	GenerationProgress  EventType = "GENERATION_PROGRESS"
	GenerationCompleted EventType = "GENERATION_COMPLETED"
	HistoryImported     EventType = "HISTORY_IMPORTED"
	BackupCompleted     EventType = "BACKUP_COMPLETED"
	ResultsCleaned      EventType = "RESULTS_CLEANED"
	ErrorOccurred       EventType = "ERROR_OCCURRED"
)

// Event represents a system event with typed data
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}

// Handler receives every event published on the bus.
type Handler func(event *Event)

// Bus fans events out to subscribers. Emit never blocks on a subscriber;
// handlers must be fast or hand off to their own goroutine.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers a handler for all events and returns an unsubscribe
// function.
func (b *Bus) Subscribe(handler Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

// Emit publishes an event to every subscriber.
func (b *Bus) Emit(eventType EventType, module string, data map[string]interface{}) {
	event := &Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
		Module:    module,
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, handler := range b.handlers {
		handlers = append(handlers, handler)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
