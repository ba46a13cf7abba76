package gesture

import "time"

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// call stopped it.
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// LoopScheduler delivers expiries through Post, which must run the closure
// on the goroutine that drives the Interpreter.
type LoopScheduler struct {
	Post func(func())
}

// AfterFunc implements Scheduler.
func (s LoopScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		s.Post(func() {
			// Stop may have been called after the timer fired but before
			// the loop got here.
			if t.stopped {
				return
			}
			t.stopped = true
			f()
		})
	})
	return t
}

// loopTimer.stopped is only touched on the loop goroutine.
type loopTimer struct {
	timer   *time.Timer
	stopped bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}
