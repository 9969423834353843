// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package guard

import (
	"log/slog"

	"github.com/danielhkuo/chainvote/models"
	"github.com/danielhkuo/chainvote/page"
)

// Outcome is the result of one guarded submit attempt
type Outcome int

const (
	OutcomeNoSelection Outcome = iota
	OutcomeDeclined
	OutcomeConfirmed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoSelection:
		return "no_selection"
	case OutcomeDeclined:
		return "declined"
	case OutcomeConfirmed:
		return "confirmed"
	}
	return "unknown"
}

type Guard struct {
	form    page.VoteForm
	dialogs page.Dialogs
}

func New(form page.VoteForm, dialogs page.Dialogs) *Guard {
	return &Guard{form: form, dialogs: dialogs}
}

// Attach registers the guard on the page's vote form.
// Returns false (and does nothing) when the page has no vote form.
func Attach(doc page.Document, dialogs page.Dialogs) (*Guard, bool) {
	form, ok := doc.VoteForm()
	if !ok {
		return nil, false
	}

	g := New(form, dialogs)
	form.OnSubmit(func(ev page.SubmitEvent) {
		g.HandleSubmit(ev)
	})
	return g, true
}

// HandleSubmit validates the selection and asks for confirmation.
// The default action is prevented unless the user confirms.
func (g *Guard) HandleSubmit(ev page.SubmitEvent) Outcome {
	candidate, ok := g.form.CheckedCandidate()
	if !ok {
		g.dialogs.Alert(models.NoSelectionMessage)
		ev.PreventDefault()
		slog.Debug("vote submission blocked", "reason", OutcomeNoSelection.String())
		return OutcomeNoSelection
	}

	// The value read above is trusted; nothing runs between read and confirm
	if !g.dialogs.Confirm(models.ConfirmVoteMessage(candidate)) {
		ev.PreventDefault()
		slog.Debug("vote submission declined", "candidate", candidate)
		return OutcomeDeclined
	}

	slog.Info("vote submission confirmed", "candidate", candidate)
	return OutcomeConfirmed
}
