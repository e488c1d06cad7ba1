package compare

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/search"
	"github.com/atotto/clipboard"
)

const (
	// DefaultInterval is how long a scenario stays on screen before the
	// carousel moves on.
	DefaultInterval = 8 * time.Second

	// CopiedFor is how long the copied indicator stays lit.
	CopiedFor = 2 * time.Second
)

// Snapshot is a copy of the observable rotator state.
type Snapshot struct {
	Index    int      `json:"index"`
	Titles   []string `json:"titles"`
	Scenario Scenario `json:"scenario"`
	Copied   bool     `json:"copied"`
	Running  bool     `json:"running"`
}

// Rotator cycles through scenarios on a timer. Manual selection and copy
// share its state with the timer callbacks; all of it sits behind one mutex
// and the change listener runs after the mutex is released.
//
// Each armed timer carries a generation. A callback whose generation is no
// longer current was superseded by Stop or by a newer arm and does nothing.
type Rotator struct {
	mu sync.Mutex

	scenarios []Scenario
	clock     search.Clock
	interval  time.Duration
	logger    *slog.Logger
	write     func(string) error
	onChange  func(Snapshot)

	active  int
	copied  bool
	running bool

	tick     search.Timer
	tickGen  uint64
	reset    search.Timer
	resetGen uint64
}

// Option configures a Rotator.
type Option func(*Rotator)

// WithClock replaces the wall clock.
func WithClock(c search.Clock) Option {
	return func(r *Rotator) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(r *Rotator) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithScenarios replaces the built-in table. An empty table is ignored.
func WithScenarios(s []Scenario) Option {
	return func(r *Rotator) {
		if len(s) > 0 {
			r.scenarios = s
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(r *Rotator) {
		if write != nil {
			r.write = write
		}
	}
}

// WithOnChange registers a listener called with a fresh snapshot after
// every state change.
func WithOnChange(f func(Snapshot)) Option {
	return func(r *Rotator) {
		r.onChange = f
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Rotator) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New builds a stopped rotator showing the first scenario.
func New(opts ...Option) *Rotator {
	r := &Rotator{
		scenarios: Scenarios,
		clock:     search.SystemClock,
		interval:  DefaultInterval,
		logger:    logging.NewNop(),
		write:     clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot returns a copy of the current state.
func (r *Rotator) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Rotator) snapshotLocked() Snapshot {
	titles := make([]string, len(r.scenarios))
	for i, s := range r.scenarios {
		titles[i] = s.Title
	}
	return Snapshot{
		Index:    r.active,
		Titles:   titles,
		Scenario: r.scenarios[r.active],
		Copied:   r.copied,
		Running:  r.running,
	}
}

func (r *Rotator) unlockAndNotify() {
	snap := r.snapshotLocked()
	f := r.onChange
	r.mu.Unlock()
	if f != nil {
		f(snap)
	}
}

// Start begins automatic rotation. Starting a running rotator is a no-op.
func (r *Rotator) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.armLocked()
	r.unlockAndNotify()
}

// Stop halts rotation and clears the copied indicator. The rotator can be
// started again.
func (r *Rotator) Stop() {
	r.mu.Lock()
	if !r.running && r.reset == nil {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.tickGen++
	if r.tick != nil {
		r.tick.Stop()
		r.tick = nil
	}
	r.resetGen++
	if r.reset != nil {
		r.reset.Stop()
		r.reset = nil
	}
	r.copied = false
	r.unlockAndNotify()
}

func (r *Rotator) armLocked() {
	r.tickGen++
	gen := r.tickGen
	r.tick = r.clock.AfterFunc(r.interval, func() { r.onTick(gen) })
}

func (r *Rotator) onTick(gen uint64) {
	r.mu.Lock()
	if !r.running || gen != r.tickGen {
		r.mu.Unlock()
		return
	}
	r.active = (r.active + 1) % len(r.scenarios)
	r.armLocked()
	r.unlockAndNotify()
}

// Select shows scenario i.
func (r *Rotator) Select(i int) error {
	r.mu.Lock()
	if i < 0 || i >= len(r.scenarios) {
		n := len(r.scenarios)
		r.mu.Unlock()
		return fmt.Errorf("scenario %d out of range [0,%d)", i, n)
	}
	r.active = i
	r.unlockAndNotify()
	return nil
}

// Advance moves to the next scenario, wrapping after the last.
func (r *Rotator) Advance() {
	r.mu.Lock()
	r.active = (r.active + 1) % len(r.scenarios)
	r.unlockAndNotify()
}

// Copy writes the Wesichain code of the visible scenario to the clipboard
// and lights the copied indicator for CopiedFor. A second copy restarts the
// window.
func (r *Rotator) Copy() (string, error) {
	r.mu.Lock()
	code := r.scenarios[r.active].Wesichain.Code
	r.mu.Unlock()

	if err := r.write(code); err != nil {
		r.logger.Warn("copy to clipboard failed", "error", err)
		return "", fmt.Errorf("copy to clipboard: %w", err)
	}

	r.mu.Lock()
	r.copied = true
	if r.reset != nil {
		r.reset.Stop()
	}
	r.resetGen++
	gen := r.resetGen
	r.reset = r.clock.AfterFunc(CopiedFor, func() { r.clearCopied(gen) })
	r.unlockAndNotify()
	return code, nil
}

func (r *Rotator) clearCopied(gen uint64) {
	r.mu.Lock()
	if gen != r.resetGen {
		r.mu.Unlock()
		return
	}
	r.copied = false
	r.reset = nil
	r.unlockAndNotify()
}
