// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "fmt"

// ConfirmVoteMessage builds the irrevocable-vote confirmation prompt
func ConfirmVoteMessage(candidate string) string {
	return fmt.Sprintf(confirmTemplate, candidate)
}
