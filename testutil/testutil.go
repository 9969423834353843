// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/chainvote/cliparse"
	"github.com/danielhkuo/chainvote/models"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		UpstreamURL:     "http://upstream.invalid",
		ResultsPath:     "/results-data",
		VotePath:        "/vote",
		RefreshInterval: 5 * time.Second,
		FadeDelay:       4 * time.Second,
		RemoveDelay:     500 * time.Millisecond,
		FetchTimeout:    2 * time.Second,
		StaticDir:       "static",
		Candidates:      []string{"Alice", "Bob"},
		DatabasePath:    "database.db",
		LogFormat:       "text",
		LogLevel:        "info",
	}
}

// Dialogs records every alert and confirmation and answers confirmations
// with Answer
type Dialogs struct {
	mu       sync.Mutex
	Answer   bool
	alerts   []string
	confirms []string
}

func (d *Dialogs) Alert(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, msg)
}

func (d *Dialogs) Confirm(msg string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirms = append(d.confirms, msg)
	return d.Answer
}

func (d *Dialogs) Alerts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.alerts...)
}

func (d *Dialogs) Confirms() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.confirms...)
}

// SubmitEvent records whether the default action was prevented
type SubmitEvent struct {
	Prevented bool
}

func (e *SubmitEvent) PreventDefault() { e.Prevented = true }

// Response is one scripted fetch result
type Response struct {
	Snapshot models.Snapshot
	Err      error
}

// ScriptedFetcher returns its responses in order and repeats the last one
// once the script is exhausted
type ScriptedFetcher struct {
	mu     sync.Mutex
	script []Response
	calls  atomic.Int64
}

func NewScriptedFetcher(script ...Response) *ScriptedFetcher {
	return &ScriptedFetcher{script: script}
}

func (f *ScriptedFetcher) FetchSnapshot(ctx context.Context) (models.Snapshot, error) {
	n := f.calls.Add(1)

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.script) == 0 {
		return models.Snapshot{}, errors.New("no scripted response")
	}
	i := int(n - 1)
	if i >= len(f.script) {
		i = len(f.script) - 1
	}
	r := f.script[i]
	return r.Snapshot, r.Err
}

// Calls returns how many fetches were issued
func (f *ScriptedFetcher) Calls() int {
	return int(f.calls.Load())
}

// PendingFetch is a fetch held open by a BlockingFetcher until resolved
type PendingFetch struct {
	reply chan Response
}

func (p *PendingFetch) Resolve(snap models.Snapshot, err error) {
	p.reply <- Response{Snapshot: snap, Err: err}
}

// BlockingFetcher hands every fetch to the test through Requests so the
// test controls when and in which order responses resolve
type BlockingFetcher struct {
	Requests chan *PendingFetch
}

func NewBlockingFetcher() *BlockingFetcher {
	return &BlockingFetcher{Requests: make(chan *PendingFetch, 16)}
}

func (f *BlockingFetcher) FetchSnapshot(ctx context.Context) (models.Snapshot, error) {
	p := &PendingFetch{reply: make(chan Response, 1)}
	select {
	case f.Requests <- p:
	case <-ctx.Done():
		return models.Snapshot{}, ctx.Err()
	}

	select {
	case r := <-p.reply:
		return r.Snapshot, r.Err
	case <-ctx.Done():
		return models.Snapshot{}, ctx.Err()
	}
}

// Next waits for the next pending fetch
func (f *BlockingFetcher) Next(t *testing.T) *PendingFetch {
	t.Helper()
	select {
	case p := <-f.Requests:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for a fetch")
		return nil
	}
}

// NewResultsServer starts a server answering GET /results-data with handler
func NewResultsServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /results-data", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// ServeBody returns a handler writing body as JSON with the given status
func ServeBody(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
