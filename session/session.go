// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/danielhkuo/chainvote/banner"
	"github.com/danielhkuo/chainvote/guard"
	"github.com/danielhkuo/chainvote/livesync"
	"github.com/danielhkuo/chainvote/page"
)

type Options struct {
	RefreshInterval time.Duration
	FadeDelay       time.Duration
	RemoveDelay     time.Duration
	DiscardStale    bool
	Observer        livesync.Observer
	Clock           clock.Clock
}

// Attached reports which components found their element on the page
type Attached struct {
	Guard        bool
	Synchronizer bool
	Banner       bool
}

// Session is the lifetime of one loaded page. The three behaviors are
// independent and share no state; the session only owns their handles.
type Session struct {
	doc     page.Document
	dialogs page.Dialogs
	fetcher livesync.Fetcher
	opts    Options

	mu        sync.Mutex
	attached  Attached
	guard     *guard.Guard
	task      *livesync.Task
	dismisser *banner.Dismisser
}

func New(doc page.Document, dialogs page.Dialogs, fetcher livesync.Fetcher, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	return &Session{doc: doc, dialogs: dialogs, fetcher: fetcher, opts: opts}
}

// Ready attaches every component whose element exists. Call once, when
// the page has finished loading.
func (s *Session) Ready(ctx context.Context) Attached {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.guard, s.attached.Guard = guard.Attach(s.doc, s.dialogs)

	s.task, s.attached.Synchronizer = livesync.Attach(ctx, s.doc, s.fetcher, livesync.Options{
		Interval:     s.opts.RefreshInterval,
		Clock:        s.opts.Clock,
		DiscardStale: s.opts.DiscardStale,
		Observer:     s.opts.Observer,
	})

	s.dismisser, s.attached.Banner = banner.Attach(s.doc, banner.Options{
		FadeDelay:   s.opts.FadeDelay,
		RemoveDelay: s.opts.RemoveDelay,
		Clock:       s.opts.Clock,
	})

	slog.Info("page session ready",
		"guard", s.attached.Guard,
		"results_sync", s.attached.Synchronizer,
		"banner", s.attached.Banner,
	)
	return s.attached
}

// Attached returns the result of Ready
func (s *Session) Attached() Attached {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// BannerDone is closed when the banner is gone; nil when no banner attached
func (s *Session) BannerDone() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dismisser == nil {
		return nil
	}
	return s.dismisser.Done()
}

// Stop ends the results refresh. The banner chain is one-shot and is left
// to finish on its own.
func (s *Session) Stop() {
	s.mu.Lock()
	task := s.task
	s.mu.Unlock()

	if task != nil {
		task.Stop()
	}
}
