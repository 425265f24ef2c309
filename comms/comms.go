// Package comms provides the progress event bus connecting the generation
// pipeline to server-sent-event subscribers.
package comms

import (
	"sync"
	"time"
)

// Event types published during a generation run.
const (
	EventTaskStarted   = "task_started"
	EventTaskCompleted = "task_completed"
	EventTaskFailed    = "task_failed"
	EventRunCompleted  = "run_completed"
)

// Message is a single progress event for a generation request.
type Message struct {
	Type      string    `json:"type"`
	RequestID string    `json:"requestId"`
	TaskType  string    `json:"taskType,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Bus distributes progress events to subscribers.
type Bus interface {
	Publish(msg Message)
	// Subscribe returns a channel of future events and a cancel func.
	// Slow subscribers drop events rather than block publishers.
	Subscribe() (<-chan Message, func())
	// History returns recent events, newest last.
	History(limit int) []Message
}

const historyCap = 256

// InMemoryBus is a process-local Bus.
type InMemoryBus struct {
	mu      sync.Mutex
	nextID  int
	subs    map[int]chan Message
	history []Message
}

// NewInMemoryBus creates an empty bus.
func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{subs: make(map[int]chan Message)}
}

func (b *InMemoryBus) Publish(msg Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = append(b.history, msg)
	if len(b.history) > historyCap {
		b.history = b.history[len(b.history)-historyCap:]
	}
	for _, ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (b *InMemoryBus) Subscribe() (<-chan Message, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan Message, 32)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (b *InMemoryBus) History(limit int) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	if limit <= 0 || limit > len(b.history) {
		limit = len(b.history)
	}
	out := make([]Message, limit)
	copy(out, b.history[len(b.history)-limit:])
	return out
}
