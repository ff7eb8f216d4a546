// Package journal keeps a bounded in-memory trail of export lifecycle
// events for debugging and audit.
package journal

import (
	"fmt"
	"sync"

	"github.com/Workiva/go-datastructures/queue"
	"github.com/valyala/bytebufferpool"

	"github.com/srediag/ownedbuf/pkg/ownedbuf"
)

// DefaultCapacity bounds a journal that was created through New with a
// non-positive capacity.
const DefaultCapacity = 1024

// Journal records ownedbuf events into a bounded queue, dropping the
// oldest entry when full. It satisfies ownedbuf.EventSink and is safe for
// concurrent use.
//
// The underlying queue is unbounded (its construction capacity is only a
// size hint) and its Get blocks on an empty queue, so every consuming
// operation runs under mu: the length check and the take are atomic and
// never see an empty queue.
type Journal struct {
	mu      sync.Mutex
	q       *queue.Queue
	cap     int64
	dropped int64
}

var _ ownedbuf.EventSink = (*Journal)(nil)

// New creates a journal holding at most capacity events.
func New(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{
		q:   queue.New(int64(capacity)),
		cap: int64(capacity),
	}
}

// Record appends an event, evicting the oldest one when the journal is
// full. Called with the owner's lock held, so it must never block.
func (j *Journal) Record(ev ownedbuf.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.q.Len() >= j.cap {
		if _, err := j.q.Get(1); err != nil {
			return
		}
		j.dropped++
	}
	_ = j.q.Put(ev)
}

// Len returns the number of buffered events.
func (j *Journal) Len() int { return int(j.q.Len()) }

// Dropped returns how many events were evicted to make room.
func (j *Journal) Dropped() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return int(j.dropped)
}

// Drain removes and returns all buffered events in record order.
func (j *Journal) Drain() []ownedbuf.Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := j.q.Len()
	if n == 0 {
		return nil
	}
	items, err := j.q.Get(n)
	if err != nil {
		return nil
	}
	events := make([]ownedbuf.Event, 0, len(items))
	for _, it := range items {
		events = append(events, it.(ownedbuf.Event))
	}
	return events
}

// Close disposes the underlying queue. Record becomes a no-op afterwards.
func (j *Journal) Close() {
	j.q.Dispose()
}

// FormatEvent renders one event as a single log-friendly line.
func FormatEvent(ev ownedbuf.Event) string {
	b := bytebufferpool.Get()
	defer bytebufferpool.Put(b)
	fmt.Fprintf(b, "%s %s %s shared=%d exclusive=%v",
		ev.When.Format("2006-01-02 15:04:05.999999"),
		ev.Kind, ev.Mode, ev.SharedExports, ev.Exclusive)
	return b.String()
}
