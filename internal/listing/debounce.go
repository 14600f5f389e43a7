package listing

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// debouncer keeps the handle of the pending search timer. Every schedule
// bumps seq, so a callback from a timer that fired while it was being
// stopped sees a stale seq and does nothing. Callers hold the controller
// lock.
type debouncer struct {
	clock clockwork.Clock
	delay time.Duration
	timer clockwork.Timer
	seq   uint64
}

func (d *debouncer) schedule(fire func(seq uint64)) {
	d.cancel()
	seq := d.seq
	d.timer = d.clock.AfterFunc(d.delay, func() { fire(seq) })
}

// cancel stops the pending timer and invalidates its callback
func (d *debouncer) cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// claim reports whether seq belongs to the live timer and, if so, releases it
func (d *debouncer) claim(seq uint64) bool {
	if seq != d.seq || d.timer == nil {
		return false
	}
	d.timer = nil
	d.seq++
	return true
}
