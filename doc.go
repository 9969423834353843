// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the chainvote command.

chainvote is the client-side behavior of a chain-verified voting page: it
confirms a vote before it is submitted, keeps a results table in sync with
the voting server, and dismisses the page's flash banner.

# Commands

	chainvote serve             Serve the vote page and relay /results-data and /vote
	chainvote watch             Show live results in the terminal
	chainvote vote [candidate]  Confirm and submit a vote
	chainvote launch -- cmd...  Check database.db, then start the voting server

The browser side is built separately:

	GOOS=js GOARCH=wasm go build -o static/chainvote.wasm ./cmd/chainvote-wasm

# Configuration

Flags, then environment, then an optional YAML file, then defaults:

  - UPSTREAM_URL (-u): voting server base URL (serve, watch, vote)
  - PORT (-p): host server port (default: 3318)
  - REFRESH_INTERVAL: results refresh period (default: 5s)
  - CANDIDATES: comma-separated candidates shown on the vote form
  - ALLOWED_ORIGINS: comma-separated cross-origin pages allowed to call the relay
  - DATABASE_PATH (-d): voting server database (default: database.db)
  - METRICS_ADDR: Prometheus listen address, disabled when empty
  - CHAINVOTE_CONFIG (-c): YAML config file

# Architecture

  - guard, livesync, banner: the three page behaviors
  - page: element ports and an in-memory document
  - session: attaches the behaviors once the page is ready
  - client: results and vote HTTP client
  - dom: browser bindings (js/wasm only)
  - term: terminal view and prompts
  - handlers, router, middleware: host server
  - launcher: database check before starting the voting server
  - metrics: Prometheus instrumentation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
