package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits periodic liveness events from long-running commands such
// as watch, so a trace shows the process was alive between file events.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat starts emitting heartbeats every interval. status, when
// set, is sampled on each beat and attached as extra fields. It returns nil
// when tracing is off or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration, status func() map[string]string) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(h.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for beat := 1; ; beat++ {
			select {
			case <-h.stop:
				return
			case now := <-ticker.C:
				ev := &Event{
					Time:   now,
					Kind:   KindHeartbeat,
					Scope:  ScopeCache,
					GID:    getGoroutineID(),
					Name:   "heartbeat",
					Detail: "#" + strconv.Itoa(beat),
				}
				if status != nil {
					ev.Extra = status()
				}
				tracer.Emit(ev)
			}
		}
	}()
	return h
}

// Stop ends the heartbeat and waits for its goroutine. Safe on nil and
// safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
