// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/chainvote/testutil"
)

func TestIndex(t *testing.T) {
	cfg := testutil.GetTestConfig()
	handler := NewPageHandler(cfg)

	tests := []struct {
		name        string
		path        string
		contains    []string
		notContains []string
	}{
		{
			name: "page contract",
			path: "/",
			contains: []string{
				`<form method="post" action="/vote">`,
				`value="Alice"`,
				`value="Bob"`,
				`<tbody id="resultsTable">`,
				`<p id="chainStatus">`,
			},
			notContains: []string{`class="flash"`},
		},
		{
			name:     "flash banner",
			path:     "/?flash=Vote+submitted+successfully%21",
			contains: []string{`<div class="flash">Vote submitted successfully!</div>`},
		},
		{
			name:        "flash is escaped",
			path:        "/?flash=%3Cscript%3Ex%3C%2Fscript%3E",
			contains:    []string{"&lt;script&gt;x&lt;/script&gt;"},
			notContains: []string{"<script>x</script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Index(w, httptest.NewRequest("GET", tt.path, nil))

			testutil.AssertStatus(t, w, http.StatusOK)
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Expected HTML content type, got %q", ct)
			}
			body := w.Body.String()
			for _, s := range tt.contains {
				if !strings.Contains(body, s) {
					t.Errorf("Expected page to contain %q", s)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(body, s) {
					t.Errorf("Expected page not to contain %q", s)
				}
			}
		})
	}
}

// The browser module finds the form by the configured vote path
func TestIndex_CustomVotePath(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.VotePath = "/ballot"
	cfg.ResultsPath = "/tally"
	handler := NewPageHandler(cfg)

	w := httptest.NewRecorder()
	handler.Index(w, httptest.NewRequest("GET", "/", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	for _, s := range []string{
		`<form method="post" action="/ballot">`,
		`<meta name="chainvote-vote-path" content="/ballot">`,
		`<meta name="chainvote-results-path" content="/tally">`,
	} {
		if !strings.Contains(body, s) {
			t.Errorf("Expected page to contain %q", s)
		}
	}
}

func TestIndex_UnknownPath(t *testing.T) {
	handler := NewPageHandler(testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.Index(w, httptest.NewRequest("GET", "/nope", nil))

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "wasm_exec.js"), []byte("// loader"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := testutil.GetTestConfig()
	cfg.StaticDir = dir
	handler := NewPageHandler(cfg).Static()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/static/wasm_exec.js", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "// loader" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}
