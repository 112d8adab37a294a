// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"time"
)

// =============================================================================
// THINKING INDICATOR
// =============================================================================

// ThinkingLabel is shown while a reply is pending.
const ThinkingLabel = "Harold is thinking"

// ThinkingDotCount is the number of pulsing dots after the label.
const ThinkingDotCount = 3

// ThinkingRate is the delay between dot frames.
var ThinkingRate = 400 * time.Millisecond

// ThinkingFrame renders the dots for animation frame n. Frames cycle through
// one, two and three lit dots; unlit dots are spaces so the width is stable.
func ThinkingFrame(n int) string {
	if n < 0 {
		n = -n
	}
	lit := n%ThinkingDotCount + 1
	return strings.Repeat(".", lit) + strings.Repeat(" ", ThinkingDotCount-lit)
}

// =============================================================================
// REVEAL
// =============================================================================

// RevealCursorGlyph trails the revealed part of a reply while it animates.
const RevealCursorGlyph = "▌"

// DefaultRevealInterval is the delay between revealed characters.
const DefaultRevealInterval = 28 * time.Millisecond
