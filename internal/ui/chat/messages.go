// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/harold-tui/internal/conversation"
	"github.com/jeranaias/harold-tui/internal/voice"
)

// replyMsg carries the outcome of a request back to the update loop.
type replyMsg struct {
	req *conversation.Request
	out conversation.Outcome
}

// revealTickMsg advances reply reveal by one grapheme.
type revealTickMsg struct{}

// pulseTickMsg advances the thinking dots.
type pulseTickMsg struct{}

// voiceEventMsg delivers one recognizer event.
type voiceEventMsg struct {
	ev voice.Event
}

// voiceClosedMsg is sent when the recognizer's event channel closes.
type voiceClosedMsg struct{}

// logoutDoneMsg is sent after the logout request finished, successfully or not.
type logoutDoneMsg struct{}
