// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package livesync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/danielhkuo/chainvote/models"
	"github.com/danielhkuo/chainvote/page"
)

// DefaultInterval is the refresh period of the results table
const DefaultInterval = 5 * time.Second

// Fetcher reads the current results snapshot
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (models.Snapshot, error)
}

// TickResult is the outcome of one refresh
type TickResult int

const (
	// TickRendered: rows and status were replaced
	TickRendered TickResult = iota
	// TickSkipped: the snapshot had no count, nothing was touched
	TickSkipped
	// TickFailed: fetch or parse failed, nothing was touched
	TickFailed
	// TickDiscarded: an older response arrived after a newer render
	TickDiscarded
)

func (r TickResult) String() string {
	switch r {
	case TickRendered:
		return "rendered"
	case TickSkipped:
		return "skipped"
	case TickFailed:
		return "failed"
	case TickDiscarded:
		return "discarded"
	}
	return "unknown"
}

// Observer is notified after every refresh
type Observer interface {
	ObserveTick(result TickResult, elapsed time.Duration)
}

// Observers fans one refresh outcome out to each observer in order
type Observers []Observer

func (obs Observers) ObserveTick(result TickResult, elapsed time.Duration) {
	for _, o := range obs {
		o.ObserveTick(result, elapsed)
	}
}

type Options struct {
	// Interval between ticks, DefaultInterval when zero
	Interval time.Duration
	// Clock drives the schedule, the wall clock when nil
	Clock clock.Clock
	// DiscardStale drops responses to requests issued before the one
	// currently rendered. Off by default: the last response to resolve wins.
	DiscardStale bool
	Observer     Observer
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	return o
}

// Synchronizer renders results snapshots into the page's table and
// integrity status line
type Synchronizer struct {
	doc     page.Document
	table   page.ResultsTable
	fetcher Fetcher
	opts    Options

	issued atomic.Uint64

	// renderMu serializes renders so overlapping ticks never interleave rows
	renderMu sync.Mutex
	rendered uint64
}

func New(doc page.Document, table page.ResultsTable, fetcher Fetcher, opts Options) *Synchronizer {
	return &Synchronizer{
		doc:     doc,
		table:   table,
		fetcher: fetcher,
		opts:    opts.withDefaults(),
	}
}

// Attach starts the refresh task if the page has a results table.
// Returns false (and starts nothing) otherwise.
func Attach(ctx context.Context, doc page.Document, fetcher Fetcher, opts Options) (*Task, bool) {
	table, ok := doc.ResultsTable()
	if !ok {
		return nil, false
	}
	return New(doc, table, fetcher, opts).Start(ctx), true
}

// Refresh fetches one snapshot and renders it. On error the page is left
// exactly as it was.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	seq := s.issued.Add(1)
	start := s.opts.Clock.Now()

	snap, err := s.fetcher.FetchSnapshot(ctx)
	if err != nil {
		s.observe(TickFailed, start)
		return fmt.Errorf("failed to fetch results: %w", err)
	}

	s.observe(s.render(seq, snap), start)
	return nil
}

// Render applies a snapshot to the page as if it were the newest response
func (s *Synchronizer) Render(snap models.Snapshot) TickResult {
	return s.render(s.issued.Add(1), snap)
}

func (s *Synchronizer) render(seq uint64, snap models.Snapshot) TickResult {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	if s.opts.DiscardStale && seq < s.rendered {
		slog.Debug("discarding stale results", "seq", seq, "rendered", s.rendered)
		return TickDiscarded
	}

	if !snap.HasCount() {
		return TickSkipped
	}

	s.table.ClearRows()
	for _, entry := range snap.Count {
		s.table.AppendRow(entry.Name, entry.VotesText())
	}

	if status, ok := s.doc.StatusLine(); ok {
		integrity := snap.Integrity()
		status.SetText(integrity.Message())
		status.SetColor(integrity.Color())
	}

	s.rendered = seq
	return TickRendered
}

// tick runs one scheduled refresh and swallows its error
func (s *Synchronizer) tick(ctx context.Context) {
	tickID := uuid.NewString()

	err := s.Refresh(ctx)
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		slog.Debug("results refresh cancelled", "tick_id", tickID)
		return
	}
	slog.Error("failed to update results", "tick_id", tickID, "error", err)
}

func (s *Synchronizer) observe(result TickResult, start time.Time) {
	if s.opts.Observer != nil {
		s.opts.Observer.ObserveTick(result, s.opts.Clock.Since(start))
	}
}
