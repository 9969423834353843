// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package banner

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/chainvote/page"
)

const waitFor = time.Second

// countingClock counts the timers it creates
type countingClock struct {
	clock.Clock
	timers atomic.Int32
}

func (c *countingClock) AfterFunc(d time.Duration, f func()) *clock.Timer {
	c.timers.Add(1)
	return c.Clock.AfterFunc(d, f)
}

func TestDismisser_Lifecycle(t *testing.T) {
	mock := clock.NewMock()
	doc := page.NewMemory(page.WithBanner("Vote submitted successfully!"))

	d, ok := Attach(doc, Options{Clock: mock})
	require.True(t, ok)

	mock.Add(DefaultFadeDelay - time.Millisecond)
	_, opacity, present := doc.BannerState()
	assert.True(t, present)
	assert.Equal(t, 1.0, opacity, "banner stays visible before the fade delay")

	mock.Add(time.Millisecond)
	require.Eventually(t, func() bool {
		_, opacity, _ := doc.BannerState()
		return opacity == 0
	}, waitFor, 5*time.Millisecond)

	_, _, present = doc.BannerState()
	assert.True(t, present, "fading banner is still in the document")

	mock.Add(DefaultRemoveDelay)
	select {
	case <-d.Done():
	case <-time.After(waitFor):
		t.Fatal("Banner was not removed")
	}

	_, _, present = doc.BannerState()
	assert.False(t, present)
}

func TestDismisser_NoBannerNoTimers(t *testing.T) {
	clk := &countingClock{Clock: clock.NewMock()}
	doc := page.NewMemory(page.WithResultsTable())

	d, ok := Attach(doc, Options{Clock: clk})
	assert.False(t, ok)
	assert.Nil(t, d)
	assert.Equal(t, int32(0), clk.timers.Load())
}

func TestDismisser_CustomDelays(t *testing.T) {
	mock := clock.NewMock()
	clk := &countingClock{Clock: mock}
	doc := page.NewMemory(page.WithBanner("hello"))

	d, ok := Attach(doc, Options{Clock: clk, FadeDelay: time.Second, RemoveDelay: 100 * time.Millisecond})
	require.True(t, ok)

	mock.Add(time.Second)
	require.Eventually(t, func() bool { return clk.timers.Load() == 2 }, waitFor, 5*time.Millisecond)

	mock.Add(100 * time.Millisecond)
	select {
	case <-d.Done():
	case <-time.After(waitFor):
		t.Fatal("Banner was not removed")
	}
	assert.Equal(t, int32(2), clk.timers.Load(), "the chain is one fade and one removal")
}
