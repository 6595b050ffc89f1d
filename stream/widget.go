package stream

import (
	"fmt"
	"time"

	"github.com/matt-g-everett/ledcat/event"
	"github.com/matt-g-everett/ledcat/workq"
)

// CatOptions configures a CatWidget.
type CatOptions struct {
	// Interval between frames while running.
	Interval time.Duration
	// Scale is the size in surface pixels of one bitmap pixel.
	Scale int
	// X and Y place the bitmap inside the widget's surface.
	X int
	Y int
	// StartRunning starts the animation without waiting for activity.
	StartRunning bool
}

// DefaultCatOptions returns one frame a second at 4x scale, running.
func DefaultCatOptions() CatOptions {
	return CatOptions{
		Interval:     time.Second,
		Scale:        4,
		StartRunning: true,
	}
}

// Size returns the surface size the widget needs.
func (o CatOptions) Size() (width, height int) {
	return o.X + FrameWidth*o.Scale, o.Y + FrameHeight*o.Scale
}

// Status is a snapshot of a CatWidget.
type Status struct {
	Frame   int  `json:"frame"`
	Frames  int  `json:"frames"`
	Running bool `json:"running"`
}

// CatWidget animates the cat on a display surface and pauses while the
// device is not active.
type CatWidget struct {
	sched       workq.Scheduler
	animator    *Animator
	surface     Surface
	unsubscribe func()
}

// NewCatWidget allocates a surface on display, subscribes to activity
// changes on bus and starts the animation. If the display cannot provide a
// surface nothing is scheduled and the error is returned.
func NewCatWidget(display Display, sched workq.Scheduler, bus *event.Bus, opts CatOptions) (*CatWidget, error) {
	width, height := opts.Size()
	surface, err := display.NewSurface(width, height)
	if err != nil {
		return nil, fmt.Errorf("cat widget: %w", err)
	}

	animator, err := NewAnimator(CatFrames(), surface, sched, opts)
	if err != nil {
		return nil, fmt.Errorf("cat widget: %w", err)
	}

	w := new(CatWidget)
	w.sched = sched
	w.animator = animator
	w.surface = surface
	w.unsubscribe = bus.Subscribe("cat_display", w.handleEvent)

	sched.Submit(func() { animator.Start(opts.StartRunning) })
	return w, nil
}

func (w *CatWidget) handleEvent(ev event.Event) {
	switch e := ev.(type) {
	case event.ActivityStateChanged:
		w.animator.SetActive(e.State == event.Active)
	}
}

// Animation returns the widget's animation.
func (w *CatWidget) Animation() Animation {
	return w.animator
}

// Status returns the current frame and run state.
func (w *CatWidget) Status() Status {
	return Status{
		Frame:   w.animator.Index(),
		Frames:  w.animator.FrameCount(),
		Running: w.animator.Running(),
	}
}

// Close unsubscribes from the bus and cancels any pending frame.
func (w *CatWidget) Close() {
	w.unsubscribe()
	w.sched.Submit(w.animator.Stop)
}
