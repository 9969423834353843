// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "strconv"

// Integrity status messages and colors shown next to the results table
const (
	VerifiedMessage = "✅ Blockchain integrity verified — no tampering detected."
	FailedMessage   = "⚠️ Blockchain integrity failed — data may be compromised."

	ColorSuccess = "green"
	ColorFailure = "red"
)

// Submission guard prompts
const (
	NoSelectionMessage = "⚠️ Please select a candidate before voting!"
	confirmTemplate    = "You are about to vote for \"%s\".\n\nOnce submitted, you cannot change your vote.\n\nDo you want to continue?"
)

// Domain types

// TallyEntry is one candidate row of a results snapshot
type TallyEntry struct {
	Name  string `json:"name"`
	Votes int64  `json:"votes"`
}

// VotesText returns the tally as display text
func (e TallyEntry) VotesText() string {
	return strconv.FormatInt(e.Votes, 10)
}

// Tally keeps entries in the order the server sent them.
// A nil Tally means the snapshot had no count field.
type Tally []TallyEntry

// Snapshot is the payload of GET /results-data
type Snapshot struct {
	Count      Tally `json:"count"`
	ValidChain bool  `json:"valid_chain"`
}

// HasCount reports whether the count mapping was present (possibly empty)
func (s Snapshot) HasCount() bool {
	return s.Count != nil
}

// Integrity returns the derived integrity status of the snapshot
func (s Snapshot) Integrity() Integrity {
	if s.ValidChain {
		return IntegrityVerified
	}
	return IntegrityFailed
}

// Integrity is the binary tamper-evidence display state
type Integrity int

const (
	IntegrityFailed Integrity = iota
	IntegrityVerified
)

// Message returns the status line text for the state
func (i Integrity) Message() string {
	if i == IntegrityVerified {
		return VerifiedMessage
	}
	return FailedMessage
}

// Color returns the status line color for the state
func (i Integrity) Color() string {
	if i == IntegrityVerified {
		return ColorSuccess
	}
	return ColorFailure
}

func (i Integrity) String() string {
	if i == IntegrityVerified {
		return "verified"
	}
	return "failed"
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
