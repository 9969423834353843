// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client calls the voting server consumed by the page behavior.

	c, err := client.New("http://localhost:5000", client.Options{})
	snap, err := c.FetchSnapshot(ctx)   // GET /results-data
	err = c.SubmitVote(ctx, "Alice")    // POST /vote, candidate=Alice

Client implements livesync.Fetcher. Non-2xx results responses return a
*StatusError; malformed bodies return an error wrapping
models.ErrInvalidSnapshot or the JSON syntax error.
*/
package client
