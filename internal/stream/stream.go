// Package stream fans completed simulation reports out to live
// subscribers, backing the SSE feed.
package stream

import (
	"sync"
	"sync/atomic"

	"github.com/astroshield/go-impact-sim/internal/report"
)

type Broadcaster struct {
	subscribers map[uint64]chan *report.Report
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan *report.Report),
	}
}

// Subscribe registers a new listener. The returned channel is buffered
// so one slow consumer cannot stall the publisher.
func (b *Broadcaster) Subscribe() (uint64, chan *report.Report) {
	id := b.nextID.Add(1)
	ch := make(chan *report.Report, 16)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

// Publish delivers r to every subscriber, skipping any whose buffer is
// full.
func (b *Broadcaster) Publish(r *report.Report) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- r:
		default:
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels so streaming handlers exit
// gracefully on shutdown.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
