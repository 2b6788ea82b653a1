package events

import (
	"context"
	"slices"
	"sync"
)

// MemorySink keeps envelopes in process. Repeated idempotency keys are
// dropped. It is safe for concurrent use.
type MemorySink struct {
	mu       sync.RWMutex
	events   []Envelope
	seenKeys map[string]struct{}
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{seenKeys: make(map[string]struct{})}
}

// Append implements EventSink.
func (m *MemorySink) Append(_ context.Context, envelope Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if envelope.IdempotencyKey != "" {
		if _, dup := m.seenKeys[envelope.IdempotencyKey]; dup {
			return nil
		}
		m.seenKeys[envelope.IdempotencyKey] = struct{}{}
	}
	m.events = append(m.events, envelope)
	return nil
}

// Events returns a copy of everything appended so far.
func (m *MemorySink) Events() []Envelope {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.events)
}

// ByType returns the envelopes of one event type.
func (m *MemorySink) ByType(eventType string) []Envelope {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Envelope
	for _, e := range m.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
