// Package poll provides a cancellable periodic task with a liveness guard.
// A screen starts one task while active and stops it on the way out; ticks
// that resolve after the stop (or after a newer task started) are discarded
// at apply time via a single generation counter, instead of per-call-site
// "is this still current" flags.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	appLog "eventhub/internal/log"
)

// ApplyFunc commits a tick's result. The commit callback runs only while
// the originating task is still the current generation; the return value
// reports whether it ran. Commit callbacks must not call back into the
// runner.
type ApplyFunc func(commit func()) bool

// TickFunc is one poll iteration. Implementations do their (possibly slow)
// fetch first and funnel every state update through apply.
type TickFunc func(ctx context.Context, apply ApplyFunc)

// Runner owns at most one active task and the generation counter shared by
// all tasks it ever started.
type Runner struct {
	mu      sync.Mutex
	current uint64
	active  *Task
}

// NewRunner builds an empty Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Task is the handle for one started poll loop.
type Task struct {
	runner  *Runner
	gen     uint64
	cron    *cron.Cron
	stopped bool
}

// Start begins ticking every interval. Any previously started task is
// stopped first, so exactly one poll loop exists at a time. The first tick
// fires one interval after Start; callers do their initial load themselves.
func (r *Runner) Start(ctx context.Context, interval time.Duration, tick TickFunc) *Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		r.active.stopLocked()
	}

	r.current++
	t := &Task{
		runner: r,
		gen:    r.current,
		cron:   cron.New(),
	}

	spec := "@every " + interval.String()
	if _, err := t.cron.AddFunc(spec, func() {
		tick(ctx, t.apply)
	}); err != nil {
		// "@every <duration>" only fails on a nonsensical interval.
		appLog.Error("poll: bad interval", err, "interval", interval)
		t.stopped = true
		return t
	}

	t.cron.Start()
	r.active = t
	appLog.Debug("poll: started", "interval", interval, "generation", t.gen)
	return t
}

// Stop ends the task. Ticks already in flight keep running but their apply
// calls become no-ops.
func (t *Task) Stop() {
	t.runner.mu.Lock()
	defer t.runner.mu.Unlock()
	t.stopLocked()
}

func (t *Task) stopLocked() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.cron.Stop()
	appLog.Debug("poll: stopped", "generation", t.gen)
}

// apply is the task's ApplyFunc. The generation comparison happens under
// the runner lock, so a stale tick can never interleave its commit with a
// newer task's.
func (t *Task) apply(commit func()) bool {
	t.runner.mu.Lock()
	defer t.runner.mu.Unlock()

	if t.stopped || t.gen != t.runner.current {
		appLog.Debug("poll: stale result discarded", "generation", t.gen, "current", t.runner.current)
		return false
	}
	commit()
	return true
}
