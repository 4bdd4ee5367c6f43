package events

import (
	"sync"
	"time"
)

// SyncCompleted is broadcast after a reconciliation pass finishes
// successfully.
type SyncCompleted struct {
	SyncedDate string
	Trigger    string
	OccurredAt time.Time
}

// Bus is a small in-process broadcaster. Delivery is best effort: a
// subscriber that is not draining its channel misses events instead of
// blocking the publisher.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan SyncCompleted
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan SyncCompleted)}
}

// Subscribe returns a buffered event channel and a cancel func. The channel
// is closed on cancel.
func (b *Bus) Subscribe() (<-chan SyncCompleted, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan SyncCompleted, 8)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *Bus) Publish(event SyncCompleted) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
