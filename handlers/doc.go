// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the chainvote host server.

# Handler Types

  - PageHandler: the vote page shell and the static wasm bundle
  - RelayHandler: results polls and vote submissions forwarded to the
    voting server

Handlers are created via constructor functions that accept the Config:

	pageHandler := handlers.NewPageHandler(cfg)
	relayHandler, err := handlers.NewRelayHandler(cfg)

# Page Contract

GET / renders the elements the browser module attaches to:

	form[action=/vote]   candidate radios named "candidate"
	#resultsTable        results table body
	#chainStatus         integrity status line
	.flash               optional banner, from the ?flash= query

# Relay

	GET  /results-data → voting server, body passed through unchanged
	POST /vote         → voting server, redirects returned to the browser

When the voting server cannot be reached the relay answers 502 with a JSON
error body.
*/
package handlers
