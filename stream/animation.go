package stream

import (
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/matt-g-everett/ledcat/workq"
)

// An Animation exposes the bitmap it is currently showing.
type Animation interface {
	CurrentBitmap() *Frame
}

// Animator cycles a fixed sequence of frames on a surface, one frame per
// interval while running. Paused, the last drawn frame stays on the surface.
//
// Start, Tick, SetActive and Stop must run on the scheduler's execution
// context. Index and Running may be read from anywhere.
type Animator struct {
	frames   []*Frame
	surface  Surface
	work     workq.Delayable
	interval time.Duration
	scale    int
	x        int
	y        int

	index   atomic.Int32
	running atomic.Bool
}

// NewAnimator creates a paused Animator on frame 0. Ticks are scheduled
// through sched.
func NewAnimator(frames []*Frame, surface Surface, sched workq.Scheduler, opts CatOptions) (*Animator, error) {
	if len(frames) == 0 {
		return nil, errors.New("animator: no frames")
	}
	if opts.Interval <= 0 || opts.Scale <= 0 {
		return nil, errors.New("animator: interval and scale must be positive")
	}

	a := new(Animator)
	a.frames = frames
	a.surface = surface
	a.interval = opts.Interval
	a.scale = opts.Scale
	a.x = opts.X
	a.y = opts.Y
	a.work = sched.NewDelayable(a.Tick)

	return a, nil
}

// Start draws frame 0 and, when running, requests an immediate tick.
func (a *Animator) Start(running bool) {
	a.index.Store(0)
	a.render()
	a.running.Store(running)
	if running {
		a.work.Reschedule(0)
	}
}

// Tick advances to the next frame, redraws, and re-arms itself while running.
func (a *Animator) Tick() {
	if !a.running.Load() {
		return
	}

	next := (int(a.index.Load()) + 1) % len(a.frames)
	a.index.Store(int32(next))
	a.render()

	a.work.Reschedule(a.interval)
}

// SetActive resumes or pauses the animation. Resuming continues from the
// current frame with an immediate tick; pausing cancels the pending tick.
// Repeating the current state changes nothing.
func (a *Animator) SetActive(active bool) {
	if !active {
		a.running.Store(false)
		a.work.Cancel()
		return
	}

	if a.running.Load() {
		return
	}
	a.running.Store(true)
	a.work.Reschedule(0)
}

// Stop pauses the animation for good.
func (a *Animator) Stop() {
	a.SetActive(false)
}

// CurrentBitmap returns the frame at the current index.
func (a *Animator) CurrentBitmap() *Frame {
	return a.frames[a.index.Load()]
}

// Index returns the current frame index.
func (a *Animator) Index() int {
	return int(a.index.Load())
}

// Running reports whether ticks are being scheduled.
func (a *Animator) Running() bool {
	return a.running.Load()
}

// FrameCount returns the number of frames in the sequence.
func (a *Animator) FrameCount() int {
	return len(a.frames)
}

func (a *Animator) render() {
	if err := a.surface.Clear(); err != nil {
		log.Printf("[Cat] clear failed: %v", err)
		return
	}
	if err := a.surface.DrawBitmap(a.CurrentBitmap(), a.x, a.y, a.scale); err != nil {
		log.Printf("[Cat] draw failed: %v", err)
	}
}
