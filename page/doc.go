// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package page defines the ports the voting page behavior is written against.

# Attachment Points

Document returns each optional element of the page:

	form[action='/vote']  → VoteForm
	#resultsTable         → ResultsTable
	#chainStatus          → StatusLine
	.flash                → Banner

A missing element is not an error; the component using it does not attach.

# Dialogs

Dialogs models the blocking alert/confirm primitives so the submission guard
can be tested without a UI.

# In-Memory Document

Memory implements Document for the terminal front-end and for tests:

	doc := page.NewMemory(
		page.WithVoteForm("Alice", "Bob"),
		page.WithResultsTable(),
		page.WithStatusLine(),
		page.WithBanner("Vote submitted successfully!"),
	)

	doc.Select("Alice")
	proceed, err := doc.Submit()
*/
package page
