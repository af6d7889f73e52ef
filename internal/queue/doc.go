// Package queue implements the bounded blocking event queue that connects the
// producer tasks of the unit to the single display consumer.
//
// The queue is a fixed-capacity ring guarded by three permits: a counting
// permit for free slots, a counting permit for filled slots and a binary
// permit over the ring itself. Producers block while the ring is full and
// consumers block while it is empty; events are never lost, duplicated or
// reordered.
package queue
