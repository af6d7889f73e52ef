package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// DefaultCapacity matches the ring size of the display link.
const DefaultCapacity = 4

// ErrInvalidCapacity is returned by New for a non-positive capacity.
var ErrInvalidCapacity = errors.New("queue capacity must be positive")

// EventQueue is a bounded FIFO of events safe for any number of producers and consumers.
type EventQueue struct {
	// free counts empty ring slots; Put takes one before touching the ring.
	free *semaphore.Weighted
	// filled counts occupied ring slots; Get takes one before touching the ring.
	filled *semaphore.Weighted

	// mu is the exclusion permit over ring, head, tail and length.
	mu sync.Mutex
	// ring is the fixed storage reused for the process lifetime.
	ring []briefcase.Event
	// head is the index of the oldest event.
	head int
	// tail is the index of the next free slot.
	tail int
	// length is the number of events in the ring.
	length int
}

// New creates a queue that holds at most capacity events.
func New(capacity int) (*EventQueue, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	q := &EventQueue{
		free:   semaphore.NewWeighted(int64(capacity)),
		filled: semaphore.NewWeighted(int64(capacity)),
		ring:   make([]briefcase.Event, capacity),
	}

	// The filled permit starts at zero: drain it completely up front.
	if !q.filled.TryAcquire(int64(capacity)) {
		return nil, fmt.Errorf("initialise filled permits: %w", ErrInvalidCapacity)
	}

	return q, nil
}

// Put appends e, blocking while the queue is full.
// The only error is the context's, in which case the queue is unchanged.
func (q *EventQueue) Put(ctx context.Context, e briefcase.Event) error {
	// Free-slot permit strictly before exclusion, otherwise a blocked
	// producer would hold the ring and starve the consumer.
	if err := q.free.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("wait for free slot: %w", err)
	}

	q.mu.Lock()
	q.ring[q.tail] = e
	q.tail = (q.tail + 1) % len(q.ring)
	q.length++
	q.mu.Unlock()

	q.filled.Release(1)

	return nil
}

// Get removes and returns the oldest event, blocking while the queue is empty.
// The only error is the context's, in which case the queue is unchanged.
func (q *EventQueue) Get(ctx context.Context) (briefcase.Event, error) {
	if err := q.filled.Acquire(ctx, 1); err != nil {
		return briefcase.Event{}, fmt.Errorf("wait for event: %w", err)
	}

	q.mu.Lock()
	e := q.ring[q.head]
	q.ring[q.head] = briefcase.Event{}
	q.head = (q.head + 1) % len(q.ring)
	q.length--
	q.mu.Unlock()

	q.free.Release(1)

	return e, nil
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.length
}

// Cap returns the fixed capacity.
func (q *EventQueue) Cap() int {
	return len(q.ring)
}
