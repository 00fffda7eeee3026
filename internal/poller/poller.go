package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/puppy-bowl-client/internal/logging"
)

// Refresher re-runs the roster fetch and render. Init is the full first load;
// Refresh only re-renders the list and leaves the form and notice alone.
type Refresher interface {
	Init(ctx context.Context)
	Refresh(ctx context.Context)
}

// Poller runs an initial roster load on start and, when an interval is set,
// refreshes the list so it follows changes made by other clients.
type Poller struct {
	target   Refresher
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent activity of the refresh loop.
type Status struct {
	Refreshes   int
	LastAttempt time.Time
	LastRefresh time.Time
}

// IsReady reports whether at least one refresh has completed.
func (s Status) IsReady() bool {
	return !s.LastRefresh.IsZero()
}

// New constructs a Poller. A non-positive interval loads once on start only.
func New(target Refresher, logger *slog.Logger, interval time.Duration) *Poller {
	return &Poller{
		target:   target,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
// Calls after the first are ignored.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return
	}
	p.started = true

	var tick <-chan time.Time
	if p.interval > 0 {
		p.ticker = time.NewTicker(p.interval)
		tick = p.ticker.C
	}
	go p.run(ctx, tick)
}

func (p *Poller) run(ctx context.Context, tick <-chan time.Time) {
	defer close(p.finished)
	logging.Info(ctx, p.logger, "roster refresher started", slog.Duration("interval", p.interval))
	defer func() {
		p.stopTicker()
		logging.Info(ctx, p.logger, "roster refresher stopped")
	}()

	// The first load is what makes the page ready.
	p.refreshOnce(ctx, p.target.Init)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-tick:
			p.refreshOnce(ctx, p.target.Refresh)
		}
	}
}

// Stop halts the refresh loop and waits for an in-flight refresh to finish,
// or for ctx to expire. It is safe to call more than once.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-p.finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) refreshOnce(ctx context.Context, refresh func(context.Context)) {
	started := p.now()
	p.markAttempt(started)
	refresh(ctx)
	if ctx.Err() != nil {
		return
	}
	finished := p.now()
	p.markRefresh(finished)
	logging.Info(ctx, p.logger, "roster refreshed", slog.Int64(logging.FieldDurationMS, finished.Sub(started).Milliseconds()))
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) markAttempt(at time.Time) {
	p.statusMu.Lock()
	p.status.LastAttempt = at
	p.statusMu.Unlock()
}

func (p *Poller) markRefresh(at time.Time) {
	p.statusMu.Lock()
	p.status.Refreshes++
	p.status.LastRefresh = at
	p.statusMu.Unlock()
}

// Status returns a snapshot of the poller's recent activity.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
