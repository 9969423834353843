// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package page

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrNoVoteForm       = errors.New("page has no vote form")
	ErrUnknownCandidate = errors.New("unknown candidate")
)

// Memory is an in-memory Document. It backs the terminal front-end and tests.
// All methods are safe for concurrent use.
type Memory struct {
	mu sync.Mutex

	form   *memoryForm
	table  *memoryTable
	status *memoryStatus
	banner *memoryBanner
}

// MemoryOption adds an element to a Memory document
type MemoryOption func(*Memory)

// WithVoteForm adds a vote form with one radio input per candidate
func WithVoteForm(candidates ...string) MemoryOption {
	return func(m *Memory) {
		m.form = &memoryForm{doc: m, candidates: slices.Clone(candidates)}
	}
}

// WithResultsTable adds an empty results table
func WithResultsTable() MemoryOption {
	return func(m *Memory) {
		m.table = &memoryTable{doc: m}
	}
}

// WithStatusLine adds an empty integrity status line
func WithStatusLine() MemoryOption {
	return func(m *Memory) {
		m.status = &memoryStatus{doc: m}
	}
}

// WithBanner adds a visible notification banner
func WithBanner(text string) MemoryOption {
	return func(m *Memory) {
		m.banner = &memoryBanner{doc: m, text: text, opacity: 1}
	}
}

// NewMemory builds a document holding only the given elements
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// mutate applies fn under the document lock
func (m *Memory) mutate(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

func (m *Memory) VoteForm() (VoteForm, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.form == nil {
		return nil, false
	}
	return m.form, true
}

func (m *Memory) ResultsTable() (ResultsTable, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return nil, false
	}
	return m.table, true
}

func (m *Memory) StatusLine() (StatusLine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == nil {
		return nil, false
	}
	return m.status, true
}

func (m *Memory) Banner() (Banner, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.banner == nil {
		return nil, false
	}
	return m.banner, true
}

// Rows returns a copy of the table rows, or nil without a table
func (m *Memory) Rows() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return nil
	}
	rows := make([][]string, len(m.table.rows))
	for i, r := range m.table.rows {
		rows[i] = slices.Clone(r)
	}
	return rows
}

// Status returns the status line text and color
func (m *Memory) Status() (text, color string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == nil {
		return "", "", false
	}
	return m.status.text, m.status.color, true
}

// BannerState returns the banner text and opacity. present is false once
// the banner was removed.
func (m *Memory) BannerState() (text string, opacity float64, present bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.banner == nil {
		return "", 0, false
	}
	return m.banner.text, m.banner.opacity, true
}

// Candidates lists the vote form's candidate inputs
func (m *Memory) Candidates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.form == nil {
		return nil
	}
	return slices.Clone(m.form.candidates)
}

// Select checks the candidate input with the given value
func (m *Memory) Select(candidate string) error {
	m.mu.Lock()
	form := m.form
	m.mu.Unlock()

	if form == nil {
		return ErrNoVoteForm
	}
	if !slices.Contains(form.candidates, candidate) {
		return fmt.Errorf("%w: %s", ErrUnknownCandidate, candidate)
	}
	m.mutate(func() { form.checked, form.selected = candidate, true })
	return nil
}

// ClearSelection unchecks every candidate input
func (m *Memory) ClearSelection() {
	m.mutate(func() {
		if m.form != nil {
			m.form.checked, m.form.selected = "", false
		}
	})
}

// Submit dispatches a submit event to the form's handlers and reports
// whether the default action may proceed
func (m *Memory) Submit() (bool, error) {
	m.mu.Lock()
	form := m.form
	var handlers []func(SubmitEvent)
	if form != nil {
		handlers = slices.Clone(form.handlers)
	}
	m.mu.Unlock()

	if form == nil {
		return false, ErrNoVoteForm
	}

	ev := &memoryEvent{}
	for _, h := range handlers {
		h(ev)
	}
	return !ev.prevented, nil
}

type memoryEvent struct {
	prevented bool
}

func (e *memoryEvent) PreventDefault() { e.prevented = true }

type memoryForm struct {
	doc        *Memory
	candidates []string
	checked    string
	selected   bool
	handlers   []func(SubmitEvent)
}

func (f *memoryForm) CheckedCandidate() (string, bool) {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()
	return f.checked, f.selected
}

func (f *memoryForm) OnSubmit(h func(SubmitEvent)) {
	f.doc.mu.Lock()
	f.handlers = append(f.handlers, h)
	f.doc.mu.Unlock()
}

type memoryTable struct {
	doc  *Memory
	rows [][]string
}

func (t *memoryTable) ClearRows() {
	t.doc.mutate(func() { t.rows = nil })
}

func (t *memoryTable) AppendRow(cells ...string) {
	row := slices.Clone(cells)
	t.doc.mutate(func() { t.rows = append(t.rows, row) })
}

type memoryStatus struct {
	doc         *Memory
	text, color string
}

func (s *memoryStatus) SetText(text string) {
	s.doc.mutate(func() { s.text = text })
}

func (s *memoryStatus) SetColor(color string) {
	s.doc.mutate(func() { s.color = color })
}

type memoryBanner struct {
	doc     *Memory
	text    string
	opacity float64
}

func (b *memoryBanner) SetOpacity(opacity float64) {
	b.doc.mutate(func() { b.opacity = opacity })
}

func (b *memoryBanner) Remove() {
	b.doc.mutate(func() {
		if b.doc.banner == b {
			b.doc.banner = nil
		}
	})
}
