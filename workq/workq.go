// Package workq provides a serialized work queue with delayable work items.
//
// Everything submitted to a Scheduler runs on one execution context, one item
// at a time, so the state owned by a widget needs no locking of its own.
package workq

import "time"

// Scheduler runs work on a single serialized execution context.
type Scheduler interface {
	// Submit queues fn to run as soon as the queue is free.
	Submit(fn func())

	// NewDelayable creates a work item that runs fn after a requested delay.
	NewDelayable(fn func()) Delayable
}

// Delayable is a work item that can be scheduled after a delay and cancelled.
// At most one submission of a Delayable is pending at any time.
type Delayable interface {
	// Reschedule replaces any pending submission with one due after delay.
	Reschedule(delay time.Duration)

	// Cancel drops the pending submission. Cancelling an idle item is a no-op.
	Cancel()

	// Pending reports whether a submission is waiting to run.
	Pending() bool
}
