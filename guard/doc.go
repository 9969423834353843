// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package guard intercepts vote form submission.

	g, attached := guard.Attach(doc, dialogs)

On every submit:

  - no candidate checked: the submit is cancelled and an alert is shown,
    no confirmation is asked
  - candidate checked: the user must confirm the irrevocable vote; declining
    cancels the submit, accepting lets the form post normally

The guard never performs network calls itself.
*/
package guard
