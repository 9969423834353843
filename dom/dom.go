// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

//go:build js && wasm

package dom

import (
	"strconv"
	"sync"
	"syscall/js"

	"github.com/danielhkuo/chainvote/page"
)

// Document is the browser page
type Document struct {
	doc          js.Value
	formSelector string

	mu    sync.Mutex
	funcs []js.Func
}

// New binds the page whose vote form posts to votePath
func New(votePath string) *Document {
	return &Document{
		doc:          js.Global().Get("document"),
		formSelector: "form[action=" + strconv.Quote(votePath) + "]",
	}
}

// Meta returns the content of the named meta tag, or fallback when the
// page has none
func Meta(name, fallback string) string {
	el := js.Global().Get("document").Call("querySelector", "meta[name="+strconv.Quote(name)+"]")
	if el.IsNull() || el.IsUndefined() {
		return fallback
	}
	if v := el.Get("content").String(); v != "" {
		return v
	}
	return fallback
}

func (d *Document) query(selector string) (js.Value, bool) {
	el := d.doc.Call("querySelector", selector)
	if el.IsNull() || el.IsUndefined() {
		return js.Value{}, false
	}
	return el, true
}

// keep holds fn for the life of the page
func (d *Document) keep(fn js.Func) {
	d.mu.Lock()
	d.funcs = append(d.funcs, fn)
	d.mu.Unlock()
}

// OnReady runs fn once the DOM is parsed, immediately if it already is
func (d *Document) OnReady(fn func()) {
	if d.doc.Get("readyState").String() != "loading" {
		fn()
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		go fn()
		return nil
	})
	d.doc.Call("addEventListener", "DOMContentLoaded", cb)
}

func (d *Document) VoteForm() (page.VoteForm, bool) {
	el, ok := d.query(d.formSelector)
	if !ok {
		return nil, false
	}
	return &voteForm{d: d, el: el}, true
}

func (d *Document) ResultsTable() (page.ResultsTable, bool) {
	el, ok := d.query("#resultsTable")
	if !ok {
		return nil, false
	}
	return &resultsTable{doc: d.doc, el: el}, true
}

func (d *Document) StatusLine() (page.StatusLine, bool) {
	el, ok := d.query("#chainStatus")
	if !ok {
		return nil, false
	}
	return &statusLine{el: el}, true
}

func (d *Document) Banner() (page.Banner, bool) {
	el, ok := d.query(".flash")
	if !ok {
		return nil, false
	}
	return &banner{el: el}, true
}

type submitEvent struct {
	ev js.Value
}

func (e submitEvent) PreventDefault() {
	e.ev.Call("preventDefault")
}

type voteForm struct {
	d  *Document
	el js.Value
}

func (f *voteForm) CheckedCandidate() (string, bool) {
	input := f.el.Call("querySelector", "input[name='candidate']:checked")
	if input.IsNull() || input.IsUndefined() {
		return "", false
	}
	return input.Get("value").String(), true
}

// OnSubmit runs h inside the submit dispatch so PreventDefault takes effect
func (f *voteForm) OnSubmit(h func(page.SubmitEvent)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		h(submitEvent{ev: args[0]})
		return nil
	})
	f.d.keep(fn)
	f.el.Call("addEventListener", "submit", fn)
}

type resultsTable struct {
	doc js.Value
	el  js.Value
}

func (t *resultsTable) ClearRows() {
	t.el.Set("textContent", "")
}

func (t *resultsTable) AppendRow(cells ...string) {
	tr := t.doc.Call("createElement", "tr")
	for _, c := range cells {
		td := t.doc.Call("createElement", "td")
		td.Set("textContent", c)
		tr.Call("appendChild", td)
	}
	t.el.Call("appendChild", tr)
}

type statusLine struct {
	el js.Value
}

func (s *statusLine) SetText(text string) {
	s.el.Set("textContent", text)
}

func (s *statusLine) SetColor(color string) {
	s.el.Get("style").Set("color", color)
}

type banner struct {
	el js.Value
}

func (b *banner) SetOpacity(opacity float64) {
	b.el.Get("style").Set("opacity", strconv.FormatFloat(opacity, 'f', -1, 64))
}

func (b *banner) Remove() {
	b.el.Call("remove")
}

// Dialogs are the browser's blocking alert and confirm
type Dialogs struct{}

func (Dialogs) Alert(msg string) {
	js.Global().Call("alert", msg)
}

func (Dialogs) Confirm(msg string) bool {
	return js.Global().Call("confirm", msg).Truthy()
}

// Origin is the page's scheme, host and port
func Origin() string {
	return js.Global().Get("location").Get("origin").String()
}
