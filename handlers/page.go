// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/chainvote/cliparse"
	"github.com/danielhkuo/chainvote/middleware"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Vote</title>
<meta name="chainvote-vote-path" content="{{.VotePath}}">
<meta name="chainvote-results-path" content="{{.ResultsPath}}">
<style>
.flash { transition: opacity 0.5s ease; }
#chainStatus { font-weight: bold; }
</style>
<script src="/static/wasm_exec.js"></script>
<script>
const go = new Go();
WebAssembly.instantiateStreaming(fetch("/static/chainvote.wasm"), go.importObject)
	.then((result) => go.run(result.instance));
</script>
</head>
<body>
{{- if .Flash}}
<div class="flash">{{.Flash}}</div>
{{- end}}
<form method="post" action="{{.VotePath}}">
{{- range .Candidates}}
<label><input type="radio" name="candidate" value="{{.}}"> {{.}}</label>
{{- end}}
<button type="submit">Vote</button>
</form>
<table>
<thead><tr><th>Candidate</th><th>Votes</th></tr></thead>
<tbody id="resultsTable"></tbody>
</table>
<p id="chainStatus"></p>
</body>
</html>
`))

type pageData struct {
	Flash       string
	VotePath    string
	ResultsPath string
	Candidates  []string
}

type PageHandler struct {
	cfg cliparse.Config
}

func NewPageHandler(cfg cliparse.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Index handles GET /
// Renders the vote page the browser module attaches to
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		middleware.ErrorResponse(w, http.StatusNotFound, "page not found")
		return
	}

	data := pageData{
		Flash:       r.URL.Query().Get("flash"),
		VotePath:    h.cfg.VotePath,
		ResultsPath: h.cfg.ResultsPath,
		Candidates:  h.cfg.Candidates,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("failed to render page", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Static serves the wasm bundle and its loader
func (h *PageHandler) Static() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(h.cfg.StaticDir)))
}
