// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package term is the terminal front-end: a View that draws the live
// results page and a Prompter that answers the page's alerts and
// confirmations from standard input.
package term
