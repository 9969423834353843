// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the results payload and display constants.

# Results Snapshot

GET /results-data returns:

	{"count": {"Alice": 3, "Bob": 5}, "valid_chain": true}

DecodeSnapshot keeps the count entries in server order (it decodes with an
ordered JSON object), so callers render rows exactly as received:

	snap, err := models.DecodeSnapshot(resp.Body)
	for _, e := range snap.Count {
		table.AppendRow(e.Name, e.VotesText())
	}

A nil Count means the field was absent or null. An empty but non-nil Count
means the server sent {} and the table should be cleared.

# Integrity Status

Integrity is derived from valid_chain on each successful fetch:

  - IntegrityVerified: VerifiedMessage in ColorSuccess (green)
  - IntegrityFailed: FailedMessage in ColorFailure (red)

# Prompts

  - NoSelectionMessage: alert shown when no candidate is checked
  - ConfirmVoteMessage(name): irrevocable-vote confirmation

# Error Response

ErrorResponse is the JSON body written by middleware.ErrorResponse.
*/
package models
