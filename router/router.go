// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/chainvote/cliparse"
	"github.com/danielhkuo/chainvote/handlers"
	"github.com/danielhkuo/chainvote/metrics"
	"github.com/danielhkuo/chainvote/middleware"
)

func NewRouter(cfg cliparse.Config) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(cfg)
	relayHandler, err := handlers.NewRelayHandler(cfg)
	if err != nil {
		return nil, err
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics
	mux.Handle("GET /metrics", metrics.Handler())

	// Voting server relay
	mux.HandleFunc("GET "+cfg.ResultsPath, middleware.WithLogging(relayHandler.Relay))
	mux.HandleFunc("POST "+cfg.VotePath, middleware.WithLogging(relayHandler.Relay))

	// Page and wasm bundle
	mux.Handle("GET /static/", pageHandler.Static())
	mux.HandleFunc("GET /", middleware.WithLogging(pageHandler.Index))

	return mux, nil
}
