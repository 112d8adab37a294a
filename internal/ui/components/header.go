// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/harold-tui/internal/model"
	"github.com/jeranaias/harold-tui/internal/ui/styles"
	"github.com/jeranaias/harold-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar above the transcript.
type Header struct {
	Title   string // Default: "Harold"
	Subject string
	Host    string
	Width   int
	theme   *styles.Theme
}

// NewHeader creates a header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: model.AssistantName,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) { h.Width = width }

// SetSubject updates the subject shown under the title.
func (h *Header) SetSubject(subject string) { h.Subject = subject }

// SetTheme changes the header styles.
func (h *Header) SetTheme(theme *styles.Theme) { h.theme = theme }

// View renders the header. Narrow terminals get the compact form.
func (h *Header) View() string {
	if h.theme == nil {
		return h.Title
	}
	if h.Width < 40 {
		return h.ViewCompact()
	}

	inner := h.Width - 4
	title := h.theme.HeaderTitle.Render(h.Title)

	var sub []string
	if h.Subject != "" {
		sub = append(sub, strings.ToUpper(h.Subject[:1])+h.Subject[1:]+" tutor")
	}
	if h.Host != "" {
		sub = append(sub, h.Host)
	}
	subtitle := h.theme.HeaderSubtitle.Render(util.TruncateWidth(strings.Join(sub, " · "), inner))

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.PlaceHorizontal(inner, lipgloss.Center, title),
		lipgloss.PlaceHorizontal(inner, lipgloss.Center, subtitle),
	)
	return h.theme.Header.Width(h.Width).Render(content)
}

// ViewCompact renders a single line header.
func (h *Header) ViewCompact() string {
	line := h.Title
	if h.Subject != "" {
		line += " | " + h.Subject
	}
	line = util.TruncateWidth(line, h.Width)
	if h.theme == nil {
		return line
	}
	return h.theme.HeaderTitle.Render(line)
}
