// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/danielhkuo/chainvote/cliparse"
	"github.com/danielhkuo/chainvote/metrics"
	"github.com/danielhkuo/chainvote/middleware"
)

// RelayHandler forwards results polls and vote submissions to the voting
// server. Redirects from the voting server go back to the browser untouched.
type RelayHandler struct {
	target *url.URL
	proxy  *httputil.ReverseProxy
}

func NewRelayHandler(cfg cliparse.Config) (*RelayHandler, error) {
	if err := cfg.RequireUpstream(); err != nil {
		return nil, err
	}
	target, err := url.Parse(cfg.UpstreamURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, fmt.Errorf("invalid upstream URL %q: scheme must be http or https", cfg.UpstreamURL)
	}

	h := &RelayHandler{target: target}
	h.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ModifyResponse: func(resp *http.Response) error {
			metrics.ObserveRelay(resp.Request.URL.Path, resp.StatusCode)
			return nil
		},
		ErrorHandler: h.upstreamError,
	}
	return h, nil
}

// Relay handles GET /results-data and POST /vote
func (h *RelayHandler) Relay(w http.ResponseWriter, r *http.Request) {
	h.proxy.ServeHTTP(w, r)
}

func (h *RelayHandler) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("voting server request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"upstream", h.target.Host,
		"error", err,
	)
	metrics.ObserveRelay(r.URL.Path, http.StatusBadGateway)
	middleware.ErrorResponse(w, http.StatusBadGateway, "voting server unavailable")
}
