// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package banner

import (
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/danielhkuo/chainvote/page"
)

const (
	DefaultFadeDelay   = 4000 * time.Millisecond
	DefaultRemoveDelay = 500 * time.Millisecond
)

type Options struct {
	// FadeDelay is the time from attach until the banner turns transparent
	FadeDelay time.Duration
	// RemoveDelay is the time from the fade until the banner is removed
	RemoveDelay time.Duration
	Clock       clock.Clock
}

func (o Options) withDefaults() Options {
	if o.FadeDelay <= 0 {
		o.FadeDelay = DefaultFadeDelay
	}
	if o.RemoveDelay <= 0 {
		o.RemoveDelay = DefaultRemoveDelay
	}
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	return o
}

// Dismisser fades out and removes the notification banner. The timer chain
// runs once and cannot be cancelled.
type Dismisser struct {
	banner page.Banner
	opts   Options
	done   chan struct{}
}

// Attach schedules the banner's removal. Returns false, creating no timers,
// when the page has no banner.
func Attach(doc page.Document, opts Options) (*Dismisser, bool) {
	b, ok := doc.Banner()
	if !ok {
		return nil, false
	}

	d := &Dismisser{
		banner: b,
		opts:   opts.withDefaults(),
		done:   make(chan struct{}),
	}
	d.opts.Clock.AfterFunc(d.opts.FadeDelay, d.fade)
	return d, true
}

func (d *Dismisser) fade() {
	// Removal is timed from the fade, so arm it first
	d.opts.Clock.AfterFunc(d.opts.RemoveDelay, d.remove)
	d.banner.SetOpacity(0)
}

func (d *Dismisser) remove() {
	d.banner.Remove()
	close(d.done)
	slog.Debug("notification banner dismissed")
}

// Done is closed once the banner has been removed
func (d *Dismisser) Done() <-chan struct{} {
	return d.done
}
