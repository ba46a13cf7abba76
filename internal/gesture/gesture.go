// Package gesture turns raw pointer, wheel and touch input into navigation
// intents.
//
// An Interpreter keeps only transient gesture bookkeeping (last wheel time,
// touch origin, pending hold timer). Like the navigation controller it must
// be driven from a single goroutine.
package gesture

import (
	"math"
	"time"

	"github.com/ziadkadry99/casegallery/internal/config"
)

// Target receives the intents an Interpreter produces.
type Target interface {
	Step(delta int)
	SetTransientOverlayMode(on bool)
	CurrentHasOverlay() bool
}

// Options holds gesture thresholds and delays.
type Options struct {
	WheelDebounce  time.Duration
	WheelThreshold float64
	SwipeThreshold float64
	HoldDelay      time.Duration
}

// DefaultOptions mirrors config.DefaultConfig().Gesture.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig().Gesture)
}

// OptionsFromConfig converts the configured millisecond values.
func OptionsFromConfig(cfg config.GestureConfig) Options {
	return Options{
		WheelDebounce:  time.Duration(cfg.WheelDebounceMS) * time.Millisecond,
		WheelThreshold: cfg.WheelThreshold,
		SwipeThreshold: cfg.SwipeThreshold,
		HoldDelay:      time.Duration(cfg.HoldDelayMS) * time.Millisecond,
	}
}

// Point is a touch coordinate in client pixels.
type Point struct {
	X, Y float64
}

// Interpreter classifies input events.
type Interpreter struct {
	target Target
	sched  Scheduler
	opts   Options

	lastWheel    time.Duration
	hasLastWheel bool

	touchStart Point
	touching   bool

	hold Timer
}

// New returns an Interpreter driving target.
func New(target Target, sched Scheduler, opts Options) *Interpreter {
	return &Interpreter{target: target, sched: sched, opts: opts}
}

// Wheel handles a wheel event. at is the event's own timestamp; events
// arriving within the debounce window of the last processed one are
// dropped. Scrolling up (negative delta) moves forward.
func (in *Interpreter) Wheel(at time.Duration, deltaY float64) {
	if in.hasLastWheel && at-in.lastWheel < in.opts.WheelDebounce {
		return
	}
	in.lastWheel = at
	in.hasLastWheel = true

	switch {
	case deltaY < -in.opts.WheelThreshold:
		in.target.Step(+1)
	case deltaY > in.opts.WheelThreshold:
		in.target.Step(-1)
	}
}

// TouchStart records the swipe origin. Multi-touch starts are ignored.
// onAsset arms the press-and-hold timer as a press on the asset would.
func (in *Interpreter) TouchStart(touches int, p Point, onAsset bool) {
	if touches != 1 {
		return
	}
	in.touchStart = p
	in.touching = true
	if onAsset {
		in.Press()
	}
}

// TouchMove cancels a pending hold and fires at most one step when the
// displacement along the dominant axis exceeds the swipe threshold. After a
// step the origin moves to p, so a long drag steps repeatedly.
func (in *Interpreter) TouchMove(touches int, p Point) {
	in.cancelHold()
	if !in.touching || touches != 1 {
		return
	}

	dx := p.X - in.touchStart.X
	dy := p.Y - in.touchStart.Y
	d := dy
	if math.Abs(dx) > math.Abs(dy) {
		d = dx
	}
	if math.Abs(d) <= in.opts.SwipeThreshold {
		return
	}
	if d < 0 {
		in.target.Step(+1)
	} else {
		in.target.Step(-1)
	}
	in.touchStart = p
}

// TouchEnd releases and clears the swipe origin.
func (in *Interpreter) TouchEnd() {
	in.Release()
	in.touching = false
}

// TouchCancel behaves like TouchEnd.
func (in *Interpreter) TouchCancel() { in.TouchEnd() }

// Press arms the hold timer. When it expires and the current image has an
// overlay, the transient overlay mode is switched on.
func (in *Interpreter) Press() {
	in.cancelHold()
	in.hold = in.sched.AfterFunc(in.opts.HoldDelay, func() {
		in.hold = nil
		if in.target.CurrentHasOverlay() {
			in.target.SetTransientOverlayMode(true)
		}
	})
}

// Release cancels a pending hold and always switches the transient overlay
// mode off.
func (in *Interpreter) Release() {
	in.cancelHold()
	in.target.SetTransientOverlayMode(false)
}

// Close stops any pending timer.
func (in *Interpreter) Close() { in.cancelHold() }

func (in *Interpreter) cancelHold() {
	if in.hold != nil {
		in.hold.Stop()
		in.hold = nil
	}
}
