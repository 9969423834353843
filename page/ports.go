// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package page

// Document exposes the optional attachment points of the voting page.
// A false second return means the element is not on the page.
type Document interface {
	VoteForm() (VoteForm, bool)
	ResultsTable() (ResultsTable, bool)
	StatusLine() (StatusLine, bool)
	Banner() (Banner, bool)
}

// SubmitEvent is a pending form submission
type SubmitEvent interface {
	// PreventDefault cancels the form's default submit action
	PreventDefault()
}

// VoteForm is the form posting to /vote
type VoteForm interface {
	// CheckedCandidate returns the value of the checked candidate input
	CheckedCandidate() (string, bool)
	// OnSubmit registers a handler run synchronously for every submit
	OnSubmit(func(SubmitEvent))
}

// ResultsTable holds one row per candidate. Cells are plain text and must
// never be interpreted as markup.
type ResultsTable interface {
	ClearRows()
	AppendRow(cells ...string)
}

// StatusLine shows the integrity status
type StatusLine interface {
	SetText(text string)
	SetColor(color string)
}

// Banner is the one-shot notification element
type Banner interface {
	SetOpacity(opacity float64)
	Remove()
}

// Dialogs are the blocking user interaction primitives
type Dialogs interface {
	// Alert shows msg and returns once the user acknowledged it
	Alert(msg string)
	// Confirm asks a yes/no question
	Confirm(msg string) bool
}
