// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package livesync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/chainvote/models"
	"github.com/danielhkuo/chainvote/page"
	"github.com/danielhkuo/chainvote/testutil"
)

var (
	aliceBob = models.Snapshot{
		Count:      models.Tally{{Name: "Alice", Votes: 3}, {Name: "Bob", Votes: 5}},
		ValidChain: true,
	}
	emptyFailed = models.Snapshot{Count: models.Tally{}, ValidChain: false}
)

func newPage() *page.Memory {
	return page.NewMemory(page.WithResultsTable(), page.WithStatusLine())
}

func newSynchronizer(t *testing.T, doc *page.Memory, f Fetcher, opts Options) *Synchronizer {
	t.Helper()
	table, ok := doc.ResultsTable()
	require.True(t, ok)
	return New(doc, table, f, opts)
}

func TestRefresh_ExampleScenario(t *testing.T) {
	doc := newPage()
	f := testutil.NewScriptedFetcher(
		testutil.Response{Snapshot: aliceBob},
		testutil.Response{Snapshot: emptyFailed},
	)
	s := newSynchronizer(t, doc, f, Options{})

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, [][]string{{"Alice", "3"}, {"Bob", "5"}}, doc.Rows())
	text, color, _ := doc.Status()
	assert.Equal(t, models.VerifiedMessage, text)
	assert.Equal(t, "green", color)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Empty(t, doc.Rows())
	text, color, _ = doc.Status()
	assert.Equal(t, models.FailedMessage, text)
	assert.Equal(t, "red", color)
}

func TestRefresh_ReplacesRows(t *testing.T) {
	doc := newPage()
	s1 := models.Snapshot{Count: models.Tally{{Name: "A", Votes: 1}, {Name: "B", Votes: 2}, {Name: "C", Votes: 3}}}
	s2 := models.Snapshot{Count: models.Tally{{Name: "C", Votes: 4}}}
	f := testutil.NewScriptedFetcher(testutil.Response{Snapshot: s1}, testutil.Response{Snapshot: s2})
	s := newSynchronizer(t, doc, f, Options{})

	require.NoError(t, s.Refresh(context.Background()))
	require.Len(t, doc.Rows(), 3)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, [][]string{{"C", "4"}}, doc.Rows())
}

func TestRefresh_KeepsServerOrder(t *testing.T) {
	doc := newPage()
	snap := models.Snapshot{Count: models.Tally{{Name: "Zed", Votes: 9}, {Name: "Amy", Votes: 1}, {Name: "Mia", Votes: 4}}}
	s := newSynchronizer(t, doc, testutil.NewScriptedFetcher(testutil.Response{Snapshot: snap}), Options{})

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, [][]string{{"Zed", "9"}, {"Amy", "1"}, {"Mia", "4"}}, doc.Rows())
}

func TestRefresh_TextCellsAreNotMarkup(t *testing.T) {
	doc := newPage()
	snap := models.Snapshot{Count: models.Tally{{Name: "<img src=x onerror=alert(1)>", Votes: 1}}}
	s := newSynchronizer(t, doc, testutil.NewScriptedFetcher(testutil.Response{Snapshot: snap}), Options{})

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, [][]string{{"<img src=x onerror=alert(1)>", "1"}}, doc.Rows())
}

func TestRefresh_MissingCountLeavesPageUntouched(t *testing.T) {
	doc := newPage()
	f := testutil.NewScriptedFetcher(
		testutil.Response{Snapshot: aliceBob},
		testutil.Response{Snapshot: models.Snapshot{ValidChain: false}},
	)
	s := newSynchronizer(t, doc, f, Options{})

	require.NoError(t, s.Refresh(context.Background()))
	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, [][]string{{"Alice", "3"}, {"Bob", "5"}}, doc.Rows())
	text, color, _ := doc.Status()
	assert.Equal(t, models.VerifiedMessage, text, "status must not change when count is absent")
	assert.Equal(t, "green", color)
}

func TestRefresh_FailureKeepsLastGoodState(t *testing.T) {
	doc := newPage()
	f := testutil.NewScriptedFetcher(
		testutil.Response{Snapshot: aliceBob},
		testutil.Response{Err: errors.New("connection refused")},
		testutil.Response{Err: models.ErrInvalidSnapshot},
	)
	s := newSynchronizer(t, doc, f, Options{})

	require.NoError(t, s.Refresh(context.Background()))

	err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	err = s.Refresh(context.Background())
	require.ErrorIs(t, err, models.ErrInvalidSnapshot)

	assert.Equal(t, [][]string{{"Alice", "3"}, {"Bob", "5"}}, doc.Rows())
	text, _, _ := doc.Status()
	assert.Equal(t, models.VerifiedMessage, text)
}

func TestRefresh_WithoutStatusLine(t *testing.T) {
	doc := page.NewMemory(page.WithResultsTable())
	s := newSynchronizer(t, doc, testutil.NewScriptedFetcher(testutil.Response{Snapshot: aliceBob}), Options{})

	require.NoError(t, s.Refresh(context.Background()))
	assert.Len(t, doc.Rows(), 2)
}

// The last response to resolve wins, even when it answers an older request
func TestRefresh_OverlappingLastResolvedWins(t *testing.T) {
	doc := newPage()
	f := testutil.NewBlockingFetcher()
	s := newSynchronizer(t, doc, f, Options{})

	older := models.Snapshot{Count: models.Tally{{Name: "old", Votes: 1}}, ValidChain: true}
	newer := models.Snapshot{Count: models.Tally{{Name: "new", Votes: 2}}, ValidChain: false}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.Refresh(context.Background()) }()
	first := f.Next(t)
	go func() { defer wg.Done(); s.Refresh(context.Background()) }()
	second := f.Next(t)

	second.Resolve(newer, nil)
	require.Eventually(t, func() bool {
		rows := doc.Rows()
		return len(rows) == 1 && rows[0][0] == "new"
	}, time.Second, 5*time.Millisecond)

	first.Resolve(older, nil)
	wg.Wait()

	assert.Equal(t, [][]string{{"old", "1"}}, doc.Rows())
}

func TestRefresh_DiscardStale(t *testing.T) {
	doc := newPage()
	f := testutil.NewBlockingFetcher()
	obs := &recordingObserver{}
	s := newSynchronizer(t, doc, f, Options{DiscardStale: true, Observer: obs})

	older := models.Snapshot{Count: models.Tally{{Name: "old", Votes: 1}}}
	newer := models.Snapshot{Count: models.Tally{{Name: "new", Votes: 2}}}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.Refresh(context.Background()) }()
	first := f.Next(t)
	go func() { defer wg.Done(); s.Refresh(context.Background()) }()
	second := f.Next(t)

	second.Resolve(newer, nil)
	require.Eventually(t, func() bool { return len(obs.results()) == 1 }, time.Second, 5*time.Millisecond)
	first.Resolve(older, nil)
	wg.Wait()

	assert.Equal(t, [][]string{{"new", "2"}}, doc.Rows())
	assert.Equal(t, []TickResult{TickRendered, TickDiscarded}, obs.results())
}

func TestAttach_NoTable(t *testing.T) {
	doc := page.NewMemory(page.WithStatusLine())
	task, ok := Attach(context.Background(), doc, testutil.NewScriptedFetcher(), Options{})
	assert.False(t, ok)
	assert.Nil(t, task)
}

type recordingObserver struct {
	mu  sync.Mutex
	got []TickResult
}

func (o *recordingObserver) ObserveTick(result TickResult, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.got = append(o.got, result)
}

func (o *recordingObserver) results() []TickResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]TickResult(nil), o.got...)
}

func TestObservers_FanOut(t *testing.T) {
	doc := newPage()
	a, b := &recordingObserver{}, &recordingObserver{}
	f := testutil.NewScriptedFetcher(
		testutil.Response{Snapshot: aliceBob},
		testutil.Response{Err: errors.New("timeout")},
	)
	s := newSynchronizer(t, doc, f, Options{Observer: Observers{a, b}})

	require.NoError(t, s.Refresh(context.Background()))
	require.Error(t, s.Refresh(context.Background()))

	want := []TickResult{TickRendered, TickFailed}
	assert.Equal(t, want, a.results())
	assert.Equal(t, want, b.results())
}
