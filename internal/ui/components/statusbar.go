// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/harold-tui/internal/ui/styles"
	"github.com/jeranaias/harold-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status is the state shown at the left of the status bar.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusListening
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	case StatusListening:
		return "Listening..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape for the status so it reads without colour.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusThinking, StatusListening:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// Shortcut is one key hint.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are shown when the terminal is wide enough.
var DefaultShortcuts = []Shortcut{
	{"Enter", "send"},
	{"^O", "image"},
	{"^R", "voice"},
	{"^K", "symbols"},
	{"^B", "sidebar"},
	{"^T", "theme"},
	{"^S", "subject"},
	{"^E", "save"},
	{"^L", "logout"},
	{"^C", "quit"},
}

// StatusBar is the line under the input.
type StatusBar struct {
	Status    Status
	Message   string // Transient note, e.g. an attach error
	Width     int
	Shortcuts []Shortcut
	theme     *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:    StatusReady,
		Width:     80,
		Shortcuts: DefaultShortcuts,
		theme:     theme,
	}
}

// SetTheme changes the status bar styles.
func (sb *StatusBar) SetTheme(theme *styles.Theme) { sb.theme = theme }

// View renders the status bar. Shortcuts are dropped from the right until the
// line fits.
func (sb *StatusBar) View() string {
	left := sb.Status.Icon() + " " + sb.Status.String()
	if sb.Message != "" {
		left += "  " + sb.Message
	}
	if sb.theme == nil {
		return util.TruncateWidth(left, sb.Width)
	}

	switch sb.Status {
	case StatusError:
		left = sb.theme.ErrorStyle.Render(left)
	case StatusListening:
		left = sb.theme.VoiceActive.Render(left)
	default:
		left = sb.theme.InfoStyle.Render(left)
	}

	avail := sb.Width - sb.theme.StatusBar.GetHorizontalFrameSize()
	hints := make([]string, 0, len(sb.Shortcuts))
	for _, s := range sb.Shortcuts {
		hints = append(hints, sb.theme.ShortcutKey.Render(s.Key)+" "+sb.theme.ShortcutDesc.Render(s.Desc))
	}
	for len(hints) > 0 && lipgloss.Width(left)+2+lipgloss.Width(strings.Join(hints, "  ")) > avail {
		hints = hints[:len(hints)-1]
	}

	line := left
	if len(hints) > 0 {
		right := strings.Join(hints, "  ")
		gap := avail - lipgloss.Width(left) - lipgloss.Width(right)
		if gap < 2 {
			gap = 2
		}
		line = left + strings.Repeat(" ", gap) + right
	}
	return sb.theme.StatusBar.Width(sb.Width).Render(line)
}
