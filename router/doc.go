// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the chainvote host server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux, err := router.NewRouter(cfg)

It fails when the configured upstream URL is missing or invalid.

# Endpoints

	GET  /health        - Liveness check
	GET  /metrics       - Prometheus exposition
	GET  /              - Vote page
	GET  /static/       - wasm bundle and loader
	GET  /results-data  - Relayed to the voting server
	POST /vote          - Relayed to the voting server

The relay paths follow Config.ResultsPath and Config.VotePath.
*/
package router
