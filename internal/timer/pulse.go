package timer

import "time"

// pulse is the cancellable handle of one running ticker goroutine. A pulse
// is replaced, never restarted.
type pulse struct {
	stop chan struct{}
}

func (e *Engine) startPulseLocked() {
	if e.pulse != nil || e.closed {
		return
	}
	p := &pulse{stop: make(chan struct{})}
	e.pulse = p
	e.pulses.Add(1)
	go e.runPulse(p)
}

// stopPulseLocked cancels the active pulse. Ticks already waiting on the
// mutex see a stale handle and do nothing.
func (e *Engine) stopPulseLocked() {
	if e.pulse == nil {
		return
	}
	close(e.pulse.stop)
	e.pulse = nil
}

func (e *Engine) runPulse(p *pulse) {
	defer e.pulses.Done()

	ticker := time.NewTicker(e.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			e.pulseTick(p)
		}
	}
}

func (e *Engine) pulseTick(p *pulse) {
	e.mu.Lock()
	if e.pulse != p {
		e.mu.Unlock()
		return
	}
	fx := e.tickLocked()
	e.mu.Unlock()

	e.apply(fx)
}
