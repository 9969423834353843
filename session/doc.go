// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session wires the page behaviors for one page load.

	s := session.New(doc, dialogs, fetcher, session.Options{})
	attached := s.Ready(ctx)  // on page-ready
	defer s.Stop()            // stops the results refresh

Ready attaches the submission guard, the results synchronizer and the banner
dismisser; each one is skipped when its element is missing from the page.
*/
package session
