// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package dom binds the page ports to the browser DOM. It only builds for
// js/wasm.
package dom
