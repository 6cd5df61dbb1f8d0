// Package ticker implements the frame pump that walks a compiled timer one
// index per second. The host feeds it display-refresh timestamps through
// Frame; the pump filters them down to one tick per interval.
//
// After any gap of at least one interval (for example when the host was
// suspended) the pump ticks once and carries on from there. It never replays
// the missed seconds.
package ticker

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the tick period used when Options.Interval is zero.
const DefaultInterval = time.Second

// Options configures a Pump.
type Options struct {
	// MaxTicks is the exclusive upper bound of the tick index, usually the
	// frame count.
	MaxTicks int
	// StartAt is the index of the first tick. Reset returns here.
	StartAt int
	// OnTick receives the current index, once per tick.
	OnTick func(index int)
	// OnComplete fires once when the index reaches MaxTicks.
	OnComplete func()
	// Interval overrides DefaultInterval.
	Interval time.Duration
}

// Pump advances an index once per interval while active.
// All methods are safe for concurrent use; callbacks run without the pump's
// lock held, so they may call back into the pump.
type Pump struct {
	mu        sync.Mutex
	opts      Options
	index     int
	lastTick  time.Time
	hasTicked bool
	active    bool
	completed bool
}

// New returns an inactive pump.
func New(opts Options) *Pump {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Pump{opts: opts, index: opts.StartAt}
}

// Frame is the per-display-frame callback. It ticks immediately on the first
// frame after Start (or Reset), then whenever at least one interval has
// passed since the previous tick.
func (p *Pump) Frame(now time.Time) {
	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return
	}

	if p.index >= p.opts.MaxTicks {
		p.active = false
		fire := !p.completed
		p.completed = true
		p.mu.Unlock()
		if fire && p.opts.OnComplete != nil {
			p.opts.OnComplete()
		}
		return
	}

	if p.hasTicked && now.Sub(p.lastTick) < p.opts.Interval {
		p.mu.Unlock()
		return
	}

	p.hasTicked = true
	p.lastTick = now
	idx := p.index
	p.index++
	p.mu.Unlock()

	if p.opts.OnTick != nil {
		p.opts.OnTick(idx)
	}
}

// Start activates the pump.
func (p *Pump) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = true
}

// Stop deactivates the pump. The index and last tick time are kept, so the
// next Start resumes with a single catch-up tick.
func (p *Pump) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
}

// Toggle flips the active state and reports the new one.
func (p *Pump) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = !p.active
	return p.active
}

// Reset rewinds the index to StartAt, not to 0, and forgets the last tick
// time so the next frame ticks immediately. The active state is left
// unchanged.
func (p *Pump) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = p.opts.StartAt
	p.hasTicked = false
	p.lastTick = time.Time{}
	p.completed = false
}

// Active reports whether the pump is accepting frames.
func (p *Pump) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Index returns the index the next tick will carry.
func (p *Pump) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Done reports whether the pump has reached MaxTicks and fired OnComplete.
func (p *Pump) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}

// Run feeds Frame from a ticker firing every refresh until the pump
// completes or ctx is cancelled. It does not Start the pump; a stopped pump
// simply idles.
func (p *Pump) Run(ctx context.Context, refresh time.Duration) error {
	if refresh <= 0 {
		refresh = time.Second / 30
	}
	t := time.NewTicker(refresh)
	defer t.Stop()

	p.Frame(time.Now())
	for !p.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			p.Frame(now)
		}
	}
	return nil
}
