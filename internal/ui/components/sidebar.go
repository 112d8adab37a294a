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
// SIDEBAR VIEW
// =============================================================================

// SidebarWidth is the width of the open sidebar, borders included.
const SidebarWidth = 24

// CollapsedWidth is the width of the glyph column shown when closed.
const CollapsedWidth = 3

// SidebarView renders the settings panel beside the transcript.
type SidebarView struct {
	Open       bool
	Glyph      string
	ToggleHint string
	Themes     []string
	Theme      string
	Subjects   []string
	Subject    string
	VoiceLabel string
	Height     int
	theme      *styles.Theme
}

// NewSidebarView creates a sidebar view.
func NewSidebarView(theme *styles.Theme) *SidebarView {
	return &SidebarView{theme: theme}
}

// SetTheme changes the sidebar styles.
func (sv *SidebarView) SetTheme(theme *styles.Theme) { sv.theme = theme }

// Width returns the rendered width for the current open state.
func (sv *SidebarView) Width() int {
	if sv.Open {
		return SidebarWidth
	}
	return CollapsedWidth
}

// View renders the sidebar.
func (sv *SidebarView) View() string {
	if sv.theme == nil {
		return ""
	}
	if !sv.Open {
		return sv.theme.SidebarToggle.
			Width(CollapsedWidth).
			Height(max(sv.Height, 1)).
			Render(sv.Glyph)
	}

	inner := SidebarWidth - 4
	var b strings.Builder

	b.WriteString(sv.theme.SidebarToggle.Render(sv.Glyph) + " " +
		sv.theme.SidebarTitle.Render(util.TruncateWidth(sv.ToggleHint, inner-2)))
	b.WriteString("\n\n")

	b.WriteString(sv.section("Theme  ^T", sv.Themes, sv.Theme, inner))
	b.WriteString("\n")
	b.WriteString(sv.section("Subject  ^S", sv.Subjects, sv.Subject, inner))
	b.WriteString("\n")

	b.WriteString(sv.theme.SidebarSection.Render("Voice  ^R"))
	b.WriteString("\n")
	b.WriteString(sv.theme.SidebarItem.Render(util.TruncateWidth(sv.VoiceLabel, inner)))

	style := sv.theme.Sidebar.Width(SidebarWidth - 2)
	if sv.Height > 2 {
		style = style.Height(sv.Height - 2)
	}
	return style.Render(b.String())
}

func (sv *SidebarView) section(title string, items []string, active string, width int) string {
	lines := []string{sv.theme.SidebarSection.Render(title)}
	for _, item := range items {
		label := util.PadRight(util.TruncateWidth(item, width-2), width-2)
		if item == active {
			lines = append(lines, sv.theme.SidebarItemActive.Render("● "+label))
		} else {
			lines = append(lines, sv.theme.SidebarItem.Render("  "+label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}
