// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Name is the palette in use; unknown names render as the default palette
	Name    string
	Palette Palette

	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App            lipgloss.Style
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ImageChip       lipgloss.Style
	ThinkingText    lipgloss.Style
	ThinkingDots    lipgloss.Style
	RevealCursor    lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar           lipgloss.Style
	SidebarTitle      lipgloss.Style
	SidebarSection    lipgloss.Style
	SidebarItem       lipgloss.Style
	SidebarItemActive lipgloss.Style
	SidebarToggle     lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer       lipgloss.Style
	InputContainerLocked lipgloss.Style
	InputPrompt          lipgloss.Style
	InputPlaceholder     lipgloss.Style
	AttachPrompt         lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND OVERLAY STYLES
	// ==========================================================================

	StatusBar           lipgloss.Style
	ShortcutKey         lipgloss.Style
	ShortcutDesc        lipgloss.Style
	VoiceActive         lipgloss.Style
	Disabled            lipgloss.Style
	PaletteBox          lipgloss.Style
	PaletteItem         lipgloss.Style
	PaletteItemSelected lipgloss.Style
	Spinner             lipgloss.Style
	ErrorStyle          lipgloss.Style
	InfoStyle           lipgloss.Style
}

// NewTheme creates a theme for the named palette with all styles configured.
func NewTheme(name string) *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		Name:         name,
		Palette:      ResolvePalette(name),
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles from the palette.
func (t *Theme) initStyles() {
	p := t.Palette

	t.App = lipgloss.NewStyle()

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	// Transcript
	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(p.AssistantBubbleFg).
		Background(p.AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.AssistantBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.ImageChip = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Secondary).
		Padding(0, 1)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	t.ThinkingDots = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	t.RevealCursor = lipgloss.NewStyle().
		Foreground(p.Accent)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	t.SidebarSection = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Bold(true).
		MarginTop(1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(p.TextPrimary)

	t.SidebarItemActive = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Accent).
		Bold(true)

	t.SidebarToggle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Accent).
		Padding(0, 1)

	t.InputContainerLocked = t.InputContainer.
		BorderForeground(p.Overlay)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	t.AttachPrompt = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	// Status bar and overlays
	t.StatusBar = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.VoiceActive = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.Disabled = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Strikethrough(true)

	t.PaletteBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 1)

	t.PaletteItem = lipgloss.NewStyle().
		Foreground(p.TextPrimary).
		Padding(0, 1)

	t.PaletteItemSelected = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.TextInverse).
		Bold(true).
		Padding(0, 1)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Accent)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast)
}
