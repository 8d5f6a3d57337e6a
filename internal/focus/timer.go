// Package focus implements a Pomodoro-style focus timer. The clock and the
// notification channel are injected so the timer itself holds no platform state.
package focus

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Phase is one segment of the Pomodoro cycle.
type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Config sets phase lengths and how often the long break comes around.
type Config struct {
	Focus          time.Duration `mapstructure:"focus"`
	ShortBreak     time.Duration `mapstructure:"short_break"`
	LongBreak      time.Duration `mapstructure:"long_break"`
	LongBreakEvery int           `mapstructure:"long_break_every"`
	AutoStart      bool          `mapstructure:"auto_start"` // start the next phase right after one completes
}

// DefaultConfig returns the classic 25/5/15 cycle with a long break every 4 sessions.
func DefaultConfig() Config {
	return Config{
		Focus:          25 * time.Minute,
		ShortBreak:     5 * time.Minute,
		LongBreak:      15 * time.Minute,
		LongBreakEvery: 4,
	}
}

// Validate checks that every duration is positive.
func (c Config) Validate() error {
	if c.Focus <= 0 || c.ShortBreak <= 0 || c.LongBreak <= 0 {
		return errors.New("focus: phase durations must be > 0")
	}
	if c.LongBreakEvery <= 0 {
		return errors.New("focus: long_break_every must be > 0")
	}
	return nil
}

// Duration returns the configured length of p.
func (c Config) Duration(p Phase) time.Duration {
	switch p {
	case PhaseShortBreak:
		return c.ShortBreak
	case PhaseLongBreak:
		return c.LongBreak
	default:
		return c.Focus
	}
}

// Clock is the time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// Event describes a completed phase.
type Event struct {
	Completed      Phase
	Next           Phase
	CompletedFocus int
	At             time.Time
}

// Notifier is told when a phase runs out.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Snapshot is a point-in-time view of the timer.
type Snapshot struct {
	Phase          Phase         `json:"phase"`
	Remaining      time.Duration `json:"remaining"`
	Running        bool          `json:"running"`
	CompletedFocus int           `json:"completedFocus"`
}

// Timer counts down the current phase. It is safe for concurrent use.
type Timer struct {
	mu       sync.Mutex
	cfg      Config
	clock    Clock
	notifier Notifier

	phase          Phase
	running        bool
	remaining      time.Duration // valid while paused
	deadline       time.Time     // valid while running
	completedFocus int
}

// NewTimer creates a stopped timer at the start of a focus phase.
func NewTimer(cfg Config, clock Clock, notifier Notifier) (*Timer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}
	t := &Timer{cfg: cfg, clock: clock, notifier: notifier}
	t.resetLocked()
	return t, nil
}

// Start resumes the countdown. Starting a running timer is a no-op.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}
	t.deadline = t.clock.Now().Add(t.remaining)
	t.running = true
}

// Pause freezes the countdown.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}
	t.remaining = t.remainingLocked(t.clock.Now())
	t.running = false
}

// Reset stops the timer and returns to a fresh focus phase with no completed sessions.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

// Skip moves to the next phase without notifying. A skipped focus phase does
// not count as completed.
func (t *Timer) Skip() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := PhaseFocus
	if t.phase == PhaseFocus {
		next = PhaseShortBreak
	}
	t.enterLocked(next, t.clock.Now())
	return t.snapshotLocked(t.clock.Now())
}

// Tick checks the deadline; when the phase has run out it notifies, then
// advances. The notifier error is returned after the state has advanced.
func (t *Timer) Tick(ctx context.Context) (Snapshot, error) {
	t.mu.Lock()
	now := t.clock.Now()
	if !t.running || now.Before(t.deadline) {
		snap := t.snapshotLocked(now)
		t.mu.Unlock()
		return snap, nil
	}

	completed := t.phase
	if completed == PhaseFocus {
		t.completedFocus++
	}
	next := t.nextLocked(completed)
	t.enterLocked(next, now)

	event := Event{
		Completed:      completed,
		Next:           next,
		CompletedFocus: t.completedFocus,
		At:             now,
	}
	snap := t.snapshotLocked(now)
	notifier := t.notifier
	t.mu.Unlock()

	if notifier == nil {
		return snap, nil
	}
	return snap, notifier.Notify(ctx, event)
}

// Snapshot returns the current state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked(t.clock.Now())
}

func (t *Timer) nextLocked(completed Phase) Phase {
	if completed != PhaseFocus {
		return PhaseFocus
	}
	if t.completedFocus%t.cfg.LongBreakEvery == 0 {
		return PhaseLongBreak
	}
	return PhaseShortBreak
}

func (t *Timer) enterLocked(p Phase, now time.Time) {
	t.phase = p
	t.remaining = t.cfg.Duration(p)
	if t.cfg.AutoStart && t.running {
		t.deadline = now.Add(t.remaining)
		return
	}
	t.running = false
}

func (t *Timer) resetLocked() {
	t.phase = PhaseFocus
	t.remaining = t.cfg.Focus
	t.running = false
	t.completedFocus = 0
}

func (t *Timer) remainingLocked(now time.Time) time.Duration {
	if !t.running {
		return t.remaining
	}
	if d := t.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

func (t *Timer) snapshotLocked(now time.Time) Snapshot {
	return Snapshot{
		Phase:          t.phase,
		Remaining:      t.remainingLocked(now),
		Running:        t.running,
		CompletedFocus: t.completedFocus,
	}
}
