// Package events is a small synchronous in-process publish/subscribe bus.
// Handlers run on the publisher's goroutine in subscription order; their
// failures are logged and never reach the publisher.
package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/julianstephens/questlog/internal/logger"
)

const (
	TopicDiaryEntryCreated = "diary.entry.created"
)

// Event is anything published on the bus
type Event interface {
	Topic() string
}

// DiaryEntryCreated is published before a diary entry dated today is saved.
// CountBefore is the number of entries that already existed for Date.
type DiaryEntryCreated struct {
	Date        string
	CountBefore int
}

func (DiaryEntryCreated) Topic() string { return TopicDiaryEntryCreated }

// Handler reacts to an event
type Handler func(ctx context.Context, event Event) error

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish delivers event to every handler subscribed to its topic. It
// returns the number of handlers that failed.
func (b *Bus) Publish(ctx context.Context, event Event) int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Topic()]...)
	b.mu.RUnlock()

	failed := 0
	for _, h := range handlers {
		if err := run(ctx, h, event); err != nil {
			failed++
			logger.Warn("Event handler failed", "topic", event.Topic(), "error", err)
		}
	}
	return failed
}

func run(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h(ctx, event)
}
