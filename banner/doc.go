// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package banner auto-dismisses the one-shot notification banner: it turns
// transparent after 4s and is removed from the page 500ms later.
package banner
