// README: Trip progress engine: fixed-step ticker with exactly-once completion.
package progress

import (
	"math"
	"sync"
	"time"
)

const (
	DefaultTickInterval = 500 * time.Millisecond
	DefaultSettleDelay  = time.Second
)

// Update is one observed point of the simulated trip.
type Update struct {
	Percent     int
	TimeLeftMin int
}

type Config struct {
	DurationMinutes int
	TickInterval    time.Duration
	SettleDelay     time.Duration
	// OnTick observes each step in tick order. Optional.
	OnTick func(Update)
	// OnComplete fires exactly once, after the settle delay, when
	// progress first reaches 100. Never fired after Stop.
	OnComplete func()
}

// Engine advances a progress percentage over wall-clock time. One
// engine serves one trip; Stop releases the ticker and suppresses any
// pending completion.
type Engine struct {
	cfg Config

	mu        sync.Mutex
	percent   int
	stopped   bool
	completed bool

	stopOnce sync.Once
	stop     chan struct{}
}

// Start begins ticking immediately.
func Start(cfg Config) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	e := &Engine{cfg: cfg, stop: make(chan struct{})}
	go e.run()
	return e
}

func (e *Engine) run() {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			if !e.step() {
				continue
			}
			// Reached 100: settle, then signal completion once.
			select {
			case <-e.stop:
				return
			case <-time.After(e.cfg.SettleDelay):
			}
			e.complete()
			return
		}
	}
}

// step advances one fixed increment and reports whether 100 was reached.
func (e *Engine) step() bool {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return false
	}
	if e.percent < 100 {
		e.percent++
	}
	u := Update{Percent: e.percent, TimeLeftMin: timeLeft(e.cfg.DurationMinutes, e.percent)}
	e.mu.Unlock()

	if e.cfg.OnTick != nil {
		e.cfg.OnTick(u)
	}
	return u.Percent >= 100
}

func (e *Engine) complete() {
	e.mu.Lock()
	if e.stopped || e.completed {
		e.mu.Unlock()
		return
	}
	e.completed = true
	e.mu.Unlock()

	if e.cfg.OnComplete != nil {
		e.cfg.OnComplete()
	}
}

// Stop cancels ticking and any pending settle timer. Safe to call more
// than once and from any goroutine.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.stopped = true
	e.mu.Unlock()
	e.stopOnce.Do(func() { close(e.stop) })
}

// Snapshot returns the current progress point.
func (e *Engine) Snapshot() Update {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Update{Percent: e.percent, TimeLeftMin: timeLeft(e.cfg.DurationMinutes, e.percent)}
}

// timeLeft = ceil(duration * (1 - percent/100)), floored at 0.
func timeLeft(durationMin, percent int) int {
	if percent >= 100 {
		return 0
	}
	return int(math.Ceil(float64(durationMin) * (1 - float64(percent)/100)))
}
