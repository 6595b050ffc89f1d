package workq

import "time"

// Sim is a Scheduler driven by virtual time. Nothing runs until Advance is
// called, which makes tick sequences deterministic in tests and dry runs.
// A Sim must only be used from one goroutine.
type Sim struct {
	now   time.Duration
	seq   uint64
	tasks []*simTask
}

type simTask struct {
	due  time.Duration
	seq  uint64
	fn   func()
	dead bool
}

// NewSim creates a Sim at virtual time zero.
func NewSim() *Sim {
	return new(Sim)
}

// Now returns the elapsed virtual time.
func (s *Sim) Now() time.Duration {
	return s.now
}

// Submit queues fn to run on the next Advance.
func (s *Sim) Submit(fn func()) {
	s.add(0, fn)
}

// NewDelayable creates a work item scheduled against virtual time.
func (s *Sim) NewDelayable(fn func()) Delayable {
	return &simDelayable{sim: s, fn: fn}
}

// Scheduled returns the number of live submissions.
func (s *Sim) Scheduled() int {
	n := 0
	for _, t := range s.tasks {
		if !t.dead {
			n++
		}
	}
	return n
}

// Flush runs everything that is due now, without moving the clock.
func (s *Sim) Flush() {
	s.Advance(0)
}

// Advance moves the clock forward by d, running every submission that falls
// due on the way in due order. Submissions made by running work are included
// when they fall due within the window.
func (s *Sim) Advance(d time.Duration) {
	target := s.now + d
	for {
		t := s.earliest()
		if t == nil || t.due > target {
			break
		}
		s.remove(t)
		s.now = t.due
		t.dead = true
		t.fn()
	}
	s.now = target
}

func (s *Sim) add(delay time.Duration, fn func()) *simTask {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &simTask{due: s.now + delay, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

func (s *Sim) earliest() *simTask {
	var best *simTask
	for _, t := range s.tasks {
		if t.dead {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Sim) remove(target *simTask) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t != target && !t.dead {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}

type simDelayable struct {
	sim  *Sim
	fn   func()
	task *simTask
}

func (d *simDelayable) Reschedule(delay time.Duration) {
	d.Cancel()
	var t *simTask
	t = d.sim.add(delay, func() {
		if d.task == t {
			d.task = nil
		}
		d.fn()
	})
	d.task = t
}

func (d *simDelayable) Cancel() {
	if d.task != nil {
		d.task.dead = true
		d.task = nil
	}
}

func (d *simDelayable) Pending() bool {
	return d.task != nil && !d.task.dead
}
