// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the harold TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// DefaultPalette is applied when no theme has been chosen.
const DefaultPalette = "ocean"

// =============================================================================
// PALETTES
// =============================================================================

// Palette is the set of colors a named theme supplies.
type Palette struct {
	Name string

	// Accent is used for the header, focus ring and selections
	Accent lipgloss.AdaptiveColor
	// Secondary marks assistant output and the sidebar title
	Secondary lipgloss.AdaptiveColor

	Surface    lipgloss.AdaptiveColor
	SurfaceDim lipgloss.AdaptiveColor
	Overlay    lipgloss.AdaptiveColor

	TextPrimary   lipgloss.AdaptiveColor
	TextSecondary lipgloss.AdaptiveColor
	TextMuted     lipgloss.AdaptiveColor
	TextInverse   lipgloss.AdaptiveColor

	UserBubbleBg          lipgloss.AdaptiveColor
	UserBubbleFg          lipgloss.AdaptiveColor
	UserBubbleBorder      lipgloss.AdaptiveColor
	AssistantBubbleBg     lipgloss.AdaptiveColor
	AssistantBubbleFg     lipgloss.AdaptiveColor
	AssistantBubbleBorder lipgloss.AdaptiveColor
}

// Ocean - blue and teal, the default
var Ocean = Palette{
	Name:                  "ocean",
	Accent:                lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"},
	Secondary:             lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"},
	Surface:               lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F172A"},
	SurfaceDim:            lipgloss.AdaptiveColor{Light: "#F0F9FF", Dark: "#0B1220"},
	Overlay:               lipgloss.AdaptiveColor{Light: "#BAE6FD", Dark: "#1E3A5F"},
	TextPrimary:           lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#E2E8F0"},
	TextSecondary:         lipgloss.AdaptiveColor{Light: "#475569", Dark: "#94A3B8"},
	TextMuted:             lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#64748B"},
	TextInverse:           lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F172A"},
	UserBubbleBg:          lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1D4ED8"},
	UserBubbleFg:          lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"},
	UserBubbleBorder:      lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"},
	AssistantBubbleBg:     lipgloss.AdaptiveColor{Light: "#ECFEFF", Dark: "#134E4A"},
	AssistantBubbleFg:     lipgloss.AdaptiveColor{Light: "#115E59", Dark: "#CCFBF1"},
	AssistantBubbleBorder: lipgloss.AdaptiveColor{Light: "#5EEAD4", Dark: "#2DD4BF"},
}

// Forest - greens
var Forest = Palette{
	Name:                  "forest",
	Accent:                lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"},
	Secondary:             lipgloss.AdaptiveColor{Light: "#4D7C0F", Dark: "#A3E635"},
	Surface:               lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0C1A12"},
	SurfaceDim:            lipgloss.AdaptiveColor{Light: "#F0FDF4", Dark: "#08130D"},
	Overlay:               lipgloss.AdaptiveColor{Light: "#BBF7D0", Dark: "#1F3A2B"},
	TextPrimary:           lipgloss.AdaptiveColor{Light: "#14532D", Dark: "#DCFCE7"},
	TextSecondary:         lipgloss.AdaptiveColor{Light: "#3F6212", Dark: "#A7C4A0"},
	TextMuted:             lipgloss.AdaptiveColor{Light: "#86A38A", Dark: "#5F7A66"},
	TextInverse:           lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0C1A12"},
	UserBubbleBg:          lipgloss.AdaptiveColor{Light: "#DCFCE7", Dark: "#166534"},
	UserBubbleFg:          lipgloss.AdaptiveColor{Light: "#166534", Dark: "#F0FDF4"},
	UserBubbleBorder:      lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#22C55E"},
	AssistantBubbleBg:     lipgloss.AdaptiveColor{Light: "#F7FEE7", Dark: "#2E3B17"},
	AssistantBubbleFg:     lipgloss.AdaptiveColor{Light: "#365314", Dark: "#ECFCCB"},
	AssistantBubbleBorder: lipgloss.AdaptiveColor{Light: "#A3E635", Dark: "#84CC16"},
}

// Sunset - warm oranges and pinks
var Sunset = Palette{
	Name:                  "sunset",
	Accent:                lipgloss.AdaptiveColor{Light: "#EA580C", Dark: "#FB923C"},
	Secondary:             lipgloss.AdaptiveColor{Light: "#BE185D", Dark: "#F472B6"},
	Surface:               lipgloss.AdaptiveColor{Light: "#FFFBF5", Dark: "#1C1210"},
	SurfaceDim:            lipgloss.AdaptiveColor{Light: "#FFF7ED", Dark: "#140C0A"},
	Overlay:               lipgloss.AdaptiveColor{Light: "#FED7AA", Dark: "#4A2A1E"},
	TextPrimary:           lipgloss.AdaptiveColor{Light: "#431407", Dark: "#FFEDD5"},
	TextSecondary:         lipgloss.AdaptiveColor{Light: "#9A3412", Dark: "#FDBA74"},
	TextMuted:             lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#9A6B55"},
	TextInverse:           lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1C1210"},
	UserBubbleBg:          lipgloss.AdaptiveColor{Light: "#FFEDD5", Dark: "#9A3412"},
	UserBubbleFg:          lipgloss.AdaptiveColor{Light: "#7C2D12", Dark: "#FFF7ED"},
	UserBubbleBorder:      lipgloss.AdaptiveColor{Light: "#F97316", Dark: "#F97316"},
	AssistantBubbleBg:     lipgloss.AdaptiveColor{Light: "#FCE7F3", Dark: "#5B1A3C"},
	AssistantBubbleFg:     lipgloss.AdaptiveColor{Light: "#831843", Dark: "#FCE7F3"},
	AssistantBubbleBorder: lipgloss.AdaptiveColor{Light: "#F472B6", Dark: "#EC4899"},
}

// Midnight - deep purples (Catppuccin Mocha surfaces)
var Midnight = Palette{
	Name:                  "midnight",
	Accent:                lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"},
	Secondary:             lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"},
	Surface:               lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"},
	SurfaceDim:            lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"},
	Overlay:               lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"},
	TextPrimary:           lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"},
	TextSecondary:         lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"},
	TextMuted:             lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"},
	TextInverse:           lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"},
	UserBubbleBg:          lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#4C1D95"},
	UserBubbleFg:          lipgloss.AdaptiveColor{Light: "#4C1D95", Dark: "#EDE9FE"},
	UserBubbleBorder:      lipgloss.AdaptiveColor{Light: "#8B5CF6", Dark: "#8B5CF6"},
	AssistantBubbleBg:     lipgloss.AdaptiveColor{Light: "#F5F3FF", Dark: "#3B3655"},
	AssistantBubbleFg:     lipgloss.AdaptiveColor{Light: "#5B4B8A", Dark: "#E9E4F5"},
	AssistantBubbleBorder: lipgloss.AdaptiveColor{Light: "#C4B5FD", Dark: "#A78BFA"},
}

// Paper - low-color, high-contrast greys
var Paper = Palette{
	Name:                  "paper",
	Accent:                lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"},
	Secondary:             lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"},
	Surface:               lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111111"},
	SurfaceDim:            lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#0A0A0A"},
	Overlay:               lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"},
	TextPrimary:           lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"},
	TextSecondary:         lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"},
	TextMuted:             lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"},
	TextInverse:           lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111111"},
	UserBubbleBg:          lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"},
	UserBubbleFg:          lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"},
	UserBubbleBorder:      lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
	AssistantBubbleBg:     lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111111"},
	AssistantBubbleFg:     lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"},
	AssistantBubbleBorder: lipgloss.AdaptiveColor{Light: "#111827", Dark: "#E5E7EB"},
}

var palettes = map[string]Palette{
	Ocean.Name:    Ocean,
	Forest.Name:   Forest,
	Sunset.Name:   Sunset,
	Midnight.Name: Midnight,
	Paper.Name:    Paper,
}

// paletteOrder is the cycling order used by the theme key.
var paletteOrder = []string{"ocean", "forest", "sunset", "midnight", "paper"}

// PaletteNames returns the theme names in cycling order.
func PaletteNames() []string {
	out := make([]string, len(paletteOrder))
	copy(out, paletteOrder)
	return out
}

// LookupPalette returns the palette called name.
func LookupPalette(name string) (Palette, bool) {
	p, ok := palettes[name]
	return p, ok
}

// ResolvePalette returns the palette called name, or the default palette.
func ResolvePalette(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[DefaultPalette]
}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// These do not change with the theme.

// SuccessHighContrast - Bright green, works for most color blindness types
var SuccessHighContrast = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"}

// ErrorHighContrast - Bright red, distinct from green even for colorblind
var ErrorHighContrast = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}

// WarningHighContrast - Bright amber, deuteranopia-friendly
var WarningHighContrast = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}

// InfoHighContrast - Bright blue, distinct from red/green spectrum
var InfoHighContrast = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// StatusIndicatorSet contains text indicators for status states.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
}

// StatusIndicators uses ASCII only for maximum compatibility.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
}

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	style := lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	style := lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with its indicator.
func RenderWarning(message string) string {
	style := lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders an info message with its indicator.
func RenderInfo(message string) string {
	style := lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
	return style.Render(StatusIndicators.Info + " " + message)
}
