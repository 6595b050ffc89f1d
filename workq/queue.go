package workq

import (
	"context"
	"sync"
	"time"
)

// Queue is a Scheduler backed by a single goroutine started with Run.
type Queue struct {
	mu    sync.Mutex
	items []func()
	wake  chan struct{}
}

// NewQueue creates an idle Queue.
func NewQueue() *Queue {
	q := new(Queue)
	q.wake = make(chan struct{}, 1)
	return q
}

// Submit queues fn. It never blocks, so work may submit more work.
func (q *Queue) Submit(fn func()) {
	q.mu.Lock()
	q.items = append(q.items, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Run drains the queue until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	for {
		for {
			fn := q.next()
			if fn == nil {
				break
			}
			fn()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}
	}
}

func (q *Queue) next() func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	fn := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return fn
}

// NewDelayable creates a timer-driven work item whose fn runs on the queue.
func (q *Queue) NewDelayable(fn func()) Delayable {
	d := new(delayable)
	d.queue = q
	d.fn = fn
	return d
}

type delayable struct {
	queue *Queue
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
}

func (d *delayable) Reschedule(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimer()
	d.gen++
	d.pending = true

	gen := d.gen
	if delay <= 0 {
		d.queue.Submit(func() { d.fire(gen) })
		return
	}
	d.timer = time.AfterFunc(delay, func() {
		d.queue.Submit(func() { d.fire(gen) })
	})
}

func (d *delayable) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimer()
	d.gen++
	d.pending = false
}

func (d *delayable) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *delayable) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire runs on the queue goroutine. A submission that was superseded or
// cancelled before it reached the front of the queue is dropped here.
func (d *delayable) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}
