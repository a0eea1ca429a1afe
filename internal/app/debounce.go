package app

import (
	"time"
)

// debouncer coalesces bursts of triggers into single calls to fn. A call
// fires once no trigger has arrived for the quiet window, or once maxWait
// has elapsed since the first trigger of the burst, whichever comes first.
// Stop flushes a pending call before returning.
type debouncer struct {
	quiet   time.Duration
	maxWait time.Duration
	fn      func()

	trigger chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

func newDebouncer(quiet, maxWait time.Duration, fn func()) *debouncer {
	d := &debouncer{
		quiet:   quiet,
		maxWait: maxWait,
		fn:      fn,
		trigger: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go d.loop()
	return d
}

// Trigger marks the debounced work as dirty. Never blocks.
func (d *debouncer) Trigger() {
	select {
	case d.trigger <- struct{}{}:
	default:
	}
}

// Stop shuts the loop down, running fn one final time if a call is pending.
func (d *debouncer) Stop() {
	close(d.stop)
	<-d.done
}

func (d *debouncer) loop() {
	defer close(d.done)

	var quietT, maxT *time.Timer
	var quietC, maxC <-chan time.Time
	pending := false

	stopTimer := func(t *time.Timer) {
		if t != nil {
			t.Stop()
		}
	}
	fire := func() {
		stopTimer(quietT)
		stopTimer(maxT)
		quietT, maxT = nil, nil
		quietC, maxC = nil, nil
		pending = false
		d.fn()
	}

	for {
		select {
		case <-d.stop:
			stopTimer(quietT)
			stopTimer(maxT)
			if pending {
				d.fn()
			}
			return

		case <-d.trigger:
			if !pending {
				pending = true
				maxT = time.NewTimer(d.maxWait)
				maxC = maxT.C
			}
			// Each trigger pushes the quiet deadline out again.
			stopTimer(quietT)
			quietT = time.NewTimer(d.quiet)
			quietC = quietT.C

		case <-quietC:
			fire()

		case <-maxC:
			fire()
		}
	}
}
