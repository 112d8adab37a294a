// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Harold"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// AssistantName prefixes every assistant reply.
const AssistantName = "Harold"

// Turn is one rendered message in the transcript.
// A turn is never edited after creation; only the revealed portion of an
// assistant turn grows while its reveal animation runs.
type Turn struct {
	ID        string
	Role      Role
	Text      string
	ImagePath string // Attached image, user turns only
	Thinking  bool   // Transient "thinking" placeholder
	CreatedAt time.Time
}

// NewUserText creates a user turn carrying text.
func NewUserText(text string) Turn {
	return Turn{ID: uuid.NewString(), Role: RoleUser, Text: text, CreatedAt: time.Now()}
}

// NewUserImage creates a user turn carrying an image reference.
func NewUserImage(path string) Turn {
	return Turn{ID: uuid.NewString(), Role: RoleUser, ImagePath: path, CreatedAt: time.Now()}
}

// NewAssistant creates an assistant turn.
func NewAssistant(text string) Turn {
	return Turn{ID: uuid.NewString(), Role: RoleAssistant, Text: text, CreatedAt: time.Now()}
}

// NewThinking creates the placeholder shown while a request is pending.
func NewThinking() Turn {
	return Turn{ID: uuid.NewString(), Role: RoleAssistant, Thinking: true, CreatedAt: time.Now()}
}

// IsImage reports whether the turn shows an attachment.
func (t Turn) IsImage() bool {
	return t.ImagePath != ""
}

// ImageName returns the base name of the attached image.
func (t Turn) ImageName() string {
	if t.ImagePath == "" {
		return ""
	}
	return filepath.Base(t.ImagePath)
}
