package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// DefaultDelay is the debounce window between the last keystroke and the lookup.
const DefaultDelay = 150 * time.Millisecond

// Messages shown by front ends for the empty states.
const (
	PromptMessage    = "Start typing to search documentation..."
	NoResultsMessage = "No results found for %q"
)

// Snapshot is a copy of the observable overlay state.
type Snapshot struct {
	Query      string              `json:"query"`
	Results    []domain.ResultItem `json:"results"`
	Open       bool                `json:"open"`
	Loading    bool                `json:"loading"`
	Generation uint64              `json:"generation"`
}

// Message is the status line for the current state, or "" when results are
// shown.
func (s Snapshot) Message() string {
	switch {
	case strings.TrimSpace(s.Query) == "":
		return PromptMessage
	case s.Loading:
		return ""
	case len(s.Results) == 0:
		return fmt.Sprintf(NoResultsMessage, s.Query)
	}
	return ""
}

// Overlay is a debounced search box over a SearchIndex.
//
// Every SetQuery bumps a generation counter. A lookup carries the generation
// it was scheduled with and its response is applied only if that generation
// is still current, so responses arriving out of order can never overwrite
// newer results. All state is guarded by one mutex; callbacks (focus, change
// listener, hooks) run after it is released.
type Overlay struct {
	mu sync.Mutex

	index  ports.SearchIndex
	clock  Clock
	delay  time.Duration
	limit  int
	logger *slog.Logger
	hooks  domain.SearchHooks

	focus    func()
	navigate func(domain.ResultItem)
	onChange func(Snapshot)

	query   string
	results []domain.ResultItem
	open    bool
	loading bool
	gen     uint64
	timer   Timer

	ctx     context.Context
	cancel  context.CancelFunc
	release func()
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(o *Overlay) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(o *Overlay) {
		if d >= 0 {
			o.delay = d
		}
	}
}

// WithLimit overrides DefaultLimit.
func WithLimit(n int) Option {
	return func(o *Overlay) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Overlay) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHooks registers lookup observers.
func WithHooks(h domain.SearchHooks) Option {
	return func(o *Overlay) {
		o.hooks = h
	}
}

// WithFocus sets the callback that moves input focus into the overlay on Open.
func WithFocus(fn func()) Option {
	return func(o *Overlay) {
		o.focus = fn
	}
}

// WithNavigate sets the callback invoked when a result is chosen.
func WithNavigate(fn func(domain.ResultItem)) Option {
	return func(o *Overlay) {
		o.navigate = fn
	}
}

// WithOnChange sets a listener called with a snapshot after every change.
func WithOnChange(fn func(Snapshot)) Option {
	return func(o *Overlay) {
		o.onChange = fn
	}
}

// New creates a closed overlay with an empty query.
func New(index ports.SearchIndex, opts ...Option) *Overlay {
	o := &Overlay{
		index:  index,
		clock:  SystemClock,
		delay:  DefaultDelay,
		limit:  DefaultLimit,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.ctx, o.cancel = context.WithCancel(context.Background())
	return o
}

// Snapshot returns a copy of the current state.
func (o *Overlay) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Overlay) snapshotLocked() Snapshot {
	results := make([]domain.ResultItem, len(o.results))
	copy(results, o.results)
	return Snapshot{
		Query:      o.query,
		Results:    results,
		Open:       o.open,
		Loading:    o.loading,
		Generation: o.gen,
	}
}

// unlockAndNotify releases the lock and notifies the listener.
func (o *Overlay) unlockAndNotify() {
	snap := o.snapshotLocked()
	o.mu.Unlock()
	if o.onChange != nil {
		o.onChange(snap)
	}
}

// Open shows the overlay and requests focus. The previous query and results
// are kept.
func (o *Overlay) Open() {
	o.mu.Lock()
	o.open = true
	o.unlockAndNotify()
	if o.focus != nil {
		o.focus()
	}
}

// Close hides the overlay. Query and results survive until Unmount.
func (o *Overlay) Close() {
	o.mu.Lock()
	o.open = false
	o.unlockAndNotify()
}

// Toggle flips visibility and requests focus when it opens.
func (o *Overlay) Toggle() {
	o.mu.Lock()
	o.open = !o.open
	opened := o.open
	o.unlockAndNotify()
	if opened && o.focus != nil {
		o.focus()
	}
}

// SetQuery replaces the query. A blank query clears the results at once;
// anything else schedules a lookup after the debounce delay, cancelling the
// previously scheduled one.
func (o *Overlay) SetQuery(text string) {
	o.mu.Lock()
	o.query = text
	o.gen++
	o.stopTimerLocked()

	q := strings.TrimSpace(text)
	if q == "" {
		o.results = nil
		o.loading = false
		o.unlockAndNotify()
		return
	}

	if o.ctx.Err() != nil {
		o.ctx, o.cancel = context.WithCancel(context.Background())
	}
	gen := o.gen
	ctx := o.ctx
	o.loading = true
	o.timer = o.clock.AfterFunc(o.delay, func() {
		o.lookup(ctx, gen, q)
	})
	o.unlockAndNotify()
}

func (o *Overlay) stopTimerLocked() {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

func (o *Overlay) lookup(ctx context.Context, gen uint64, q string) {
	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()
		return
	}
	o.timer = nil
	o.mu.Unlock()

	evt := &domain.LookupEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventLookup},
		Query:      q,
		Generation: gen,
	}
	if o.hooks.OnLookup != nil {
		o.hooks.OnLookup(evt)
	}

	var (
		hits []domain.Hit
		err  error
	)
	if o.index == nil {
		err = domain.ErrIndexNotReady
	} else {
		hits, err = o.search(ctx, q)
	}
	evt.Duration = time.Since(evt.Timestamp)

	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()
		o.logger.Debug("dropped stale search response", "query", q, "generation", gen)
		stale := *evt
		stale.Type = domain.EventLookupStale
		stale.Err = err
		if o.hooks.OnStale != nil {
			o.hooks.OnStale(&stale)
		}
		return
	}

	o.loading = false
	if err != nil {
		o.results = nil
		o.unlockAndNotify()

		level := slog.LevelError
		if errors.Is(err, domain.ErrIndexNotReady) {
			level = slog.LevelWarn
		}
		o.logger.Log(ctx, level, "search lookup failed", "query", q, "error", err)

		failed := *evt
		failed.Type = domain.EventLookupFailed
		failed.Err = err
		if o.hooks.OnFailure != nil {
			o.hooks.OnFailure(&failed)
		}
		return
	}

	o.results = Normalize(hits, o.limit)
	evt.Hits = len(o.results)
	o.unlockAndNotify()
	if o.hooks.OnResults != nil {
		o.hooks.OnResults(evt)
	}
}

// search turns a panicking index into a failed lookup.
func (o *Overlay) search(ctx context.Context, q string) (hits []domain.Hit, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("search index panicked: %v", r)
		}
	}()
	return o.index.Search(ctx, q)
}

// Choose navigates to the i-th result and closes the overlay.
func (o *Overlay) Choose(i int) (domain.ResultItem, bool) {
	o.mu.Lock()
	if i < 0 || i >= len(o.results) {
		o.mu.Unlock()
		return domain.ResultItem{}, false
	}
	item := o.results[i]
	o.open = false
	o.unlockAndNotify()

	if o.navigate != nil {
		o.navigate(item)
	}
	return item, true
}

// HandleKey applies the global shortcuts: mod+k toggles, esc closes.
func (o *Overlay) HandleKey(k Key) bool {
	switch k {
	case ToggleKey:
		o.Toggle()
		return true
	case EscapeKey:
		o.mu.Lock()
		if !o.open {
			o.mu.Unlock()
			return false
		}
		o.open = false
		o.unlockAndNotify()
		return true
	}
	return false
}

// Bind subscribes the overlay to kb and returns the release function.
// Binding again releases the previous subscription first.
func (o *Overlay) Bind(kb *Keyboard) func() {
	release := kb.Subscribe(o.HandleKey)

	o.mu.Lock()
	prev := o.release
	o.release = release
	if o.ctx.Err() != nil {
		o.ctx, o.cancel = context.WithCancel(context.Background())
	}
	o.mu.Unlock()

	if prev != nil {
		prev()
	}
	return release
}

// Unmount releases the keyboard binding, cancels the pending lookup,
// invalidates in-flight ones and discards query and results. The overlay
// stays usable: a later SetQuery or Bind starts over with a fresh context.
func (o *Overlay) Unmount() {
	o.mu.Lock()
	release := o.release
	o.release = nil
	o.stopTimerLocked()
	o.gen++
	o.cancel()
	o.query = ""
	o.results = nil
	o.open = false
	o.loading = false
	o.unlockAndNotify()

	if release != nil {
		release()
	}
}
