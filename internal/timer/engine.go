// Package timer implements the client-resident countdown state machine. The
// engine owns exactly one countdown at a time and only signals phase expiry;
// advancing to the next phase is the host's decision.
package timer

import (
	"fmt"
	"sync"
	"time"

	"zen/internal/model"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
	StateExpired State = "expired"
)

// Phase determines which configured duration governs the countdown and which
// tone fires on expiry.
type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short"
	PhaseLongBreak  Phase = "long"
)

// Notifier receives the audible cue when a countdown expires. The tone is a
// pure function of the phase; any notification mechanism may substitute.
type Notifier interface {
	Notify(tone Tone)
}

// Snapshot is a consistent view of the engine for rendering.
type Snapshot struct {
	State     State
	Phase     Phase
	Remaining int
}

type Engine struct {
	mu        sync.Mutex
	cfg       model.Config
	state     State
	phase     Phase
	remaining int
	stopCh    chan struct{}

	notifier Notifier
	interval time.Duration
	onTick   func(remaining int)
	onExpire func(phase Phase)
}

type Option func(*Engine)

// WithTickInterval overrides the 1 s countdown resolution; tests shrink it.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// WithOnTick registers a callback invoked after every decrement.
func WithOnTick(fn func(remaining int)) Option {
	return func(e *Engine) { e.onTick = fn }
}

// WithOnExpire registers a callback invoked once when a countdown reaches 0.
func WithOnExpire(fn func(phase Phase)) Option {
	return func(e *Engine) { e.onExpire = fn }
}

func New(notifier Notifier, opts ...Option) *Engine {
	e := &Engine{
		notifier: notifier,
		interval: time.Second,
		state:    StateIdle,
		phase:    PhaseFocus,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize binds the engine to a config: focus phase, idle, full focus
// duration. Must be called again whenever the active config changes.
func (e *Engine) Initialize(cfg model.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltLocked()
	e.cfg = cfg
	e.phase = PhaseFocus
	e.state = StateIdle
	e.remaining = e.phaseDurationLocked(PhaseFocus)
}

// Start begins the countdown. A second Start while running is a no-op, as is
// Start after expiry; only idle and stopped engines can start.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.state == StateRunning || e.state == StateExpired {
		e.mu.Unlock()
		return
	}

	e.state = StateRunning
	stopCh := make(chan struct{})
	e.stopCh = stopCh
	interval := e.interval
	e.mu.Unlock()

	go e.run(stopCh, interval)
}

// Stop halts the countdown and preserves the remaining time so the operator
// can resume. Exactly one in-flight countdown is cancelled.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return
	}
	e.state = StateStopped
	e.haltLocked()
}

// Reset halts any countdown and returns to idle with the focus phase and its
// full duration.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltLocked()
	e.state = StateIdle
	e.phase = PhaseFocus
	e.remaining = e.phaseDurationLocked(PhaseFocus)
}

// SetPhase switches to another phase and reloads that phase's duration. It is
// the host-policy hook for advancing focus -> break; a running countdown is
// left untouched and the call reports false.
func (e *Engine) SetPhase(phase Phase) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateRunning {
		return false
	}
	e.phase = phase
	e.state = StateIdle
	e.remaining = e.phaseDurationLocked(phase)
	return true
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		State:     e.state,
		Phase:     e.phase,
		Remaining: e.remaining,
	}
}

func (e *Engine) run(stopCh chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if done := e.tick(); done {
				return
			}
		}
	}
}

// tick decrements once, floored at 0. Reaching 0 expires the countdown and
// fires the phase tone exactly once.
func (e *Engine) tick() bool {
	e.mu.Lock()
	// A Stop that raced the ticker wins; no decrement after halting.
	if e.state != StateRunning {
		e.mu.Unlock()
		return true
	}

	if e.remaining > 0 {
		e.remaining--
	}
	remaining := e.remaining

	expired := remaining == 0
	if expired {
		e.state = StateExpired
		e.stopCh = nil
	}
	phase := e.phase
	onTick := e.onTick
	onExpire := e.onExpire
	notifier := e.notifier
	e.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if expired {
		if notifier != nil {
			notifier.Notify(ToneFor(phase))
		}
		if onExpire != nil {
			onExpire(phase)
		}
	}
	return expired
}

// haltLocked cancels the pending countdown, if any. Caller holds e.mu.
func (e *Engine) haltLocked() {
	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}
}

func (e *Engine) phaseDurationLocked(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return e.cfg.ShortBreakMinutes * 60
	case PhaseLongBreak:
		return e.cfg.LongBreakMinutes * 60
	default:
		return e.cfg.FocusMinutes * 60
	}
}

// FormatTime renders seconds as minutes:seconds with the seconds zero-padded,
// e.g. 65 -> "1:05".
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
