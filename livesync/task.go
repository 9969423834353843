// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package livesync

import (
	"context"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"
)

// Task is the recurring refresh started by Synchronizer.Start. Ticks are
// wall-clock periodic: the next tick is armed before the current fetch
// runs, so slow fetches may overlap.
type Task struct {
	sync *Synchronizer

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timer   *clock.Timer
	stopped bool

	inflight sync.WaitGroup
	done     chan struct{}
}

// Start schedules the first refresh one full interval from now. The task
// runs until ctx is cancelled or Stop is called.
func (s *Synchronizer) Start(ctx context.Context) *Task {
	t := &Task{
		sync: s,
		done: make(chan struct{}),
	}
	t.ctx, t.cancel = context.WithCancel(ctx)
	context.AfterFunc(t.ctx, t.shutdown)

	t.arm()
	slog.Info("results sync started", "interval", s.opts.Interval.String())
	return t
}

func (t *Task) arm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.timer = t.sync.opts.Clock.AfterFunc(t.sync.opts.Interval, t.fire)
}

func (t *Task) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.inflight.Add(1)
	t.mu.Unlock()

	t.arm()

	go func() {
		defer t.inflight.Done()
		t.sync.tick(t.ctx)
	}()
}

func (t *Task) shutdown() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
	t.mu.Unlock()

	t.inflight.Wait()
	close(t.done)
	slog.Info("results sync stopped")
}

// Stop cancels the schedule and any in-flight fetch, then waits for
// running ticks to return. Safe to call more than once.
func (t *Task) Stop() {
	t.cancel()
	<-t.done
}

// Done is closed once the task has fully stopped
func (t *Task) Done() <-chan struct{} {
	return t.done
}
