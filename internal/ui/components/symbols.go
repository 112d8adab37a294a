// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/harold-tui/internal/ui/styles"
)

// =============================================================================
// SYMBOL PALETTE
// =============================================================================

// MathSymbols are offered by the symbol palette, in display order.
var MathSymbols = []string{"×", "÷", "√", "π", "²", "³", "≤", "≥", "≠", "±", "∞", "°", "θ", "∆", "∑", "∫"}

// SymbolChosenMsg is sent when the user picks a symbol.
type SymbolChosenMsg struct {
	Symbol string
}

// SymbolPalette is a one-line overlay of math symbols.
type SymbolPalette struct {
	symbols  []string
	selected int
	visible  bool
	theme    *styles.Theme
}

// NewSymbolPalette creates a hidden palette.
func NewSymbolPalette(theme *styles.Theme) *SymbolPalette {
	return &SymbolPalette{symbols: MathSymbols, theme: theme}
}

// SetTheme changes the palette's styles.
func (sp *SymbolPalette) SetTheme(theme *styles.Theme) {
	sp.theme = theme
}

// Show opens the palette.
func (sp *SymbolPalette) Show() { sp.visible = true }

// Hide closes the palette.
func (sp *SymbolPalette) Hide() { sp.visible = false }

// Toggle opens or closes the palette.
func (sp *SymbolPalette) Toggle() { sp.visible = !sp.visible }

// Visible reports whether the palette is open.
func (sp *SymbolPalette) Visible() bool { return sp.visible }

// Selected returns the highlighted symbol.
func (sp *SymbolPalette) Selected() string {
	return sp.symbols[sp.selected]
}

// Update handles keys while the palette is open. Left/Right move the
// highlight, Enter picks it, Esc closes, and 1-9 pick directly.
func (sp *SymbolPalette) Update(msg tea.Msg) (*SymbolPalette, tea.Cmd) {
	if !sp.visible {
		return sp, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return sp, nil
	}

	switch key.String() {
	case "esc", "ctrl+k":
		sp.Hide()
	case "left", "shift+tab":
		sp.selected = (sp.selected - 1 + len(sp.symbols)) % len(sp.symbols)
	case "right", "tab":
		sp.selected = (sp.selected + 1) % len(sp.symbols)
	case "enter":
		return sp, sp.choose(sp.selected)
	default:
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= 9 && n <= len(sp.symbols) {
			return sp, sp.choose(n - 1)
		}
	}
	return sp, nil
}

func (sp *SymbolPalette) choose(i int) tea.Cmd {
	sp.selected = i
	sp.Hide()
	symbol := sp.symbols[i]
	return func() tea.Msg { return SymbolChosenMsg{Symbol: symbol} }
}

// View renders the palette.
func (sp *SymbolPalette) View() string {
	if !sp.visible || sp.theme == nil {
		return ""
	}
	items := make([]string, len(sp.symbols))
	for i, s := range sp.symbols {
		if i == sp.selected {
			items[i] = sp.theme.PaletteItemSelected.Render(s)
		} else {
			items[i] = sp.theme.PaletteItem.Render(s)
		}
	}
	help := sp.theme.ShortcutDesc.Render("←/→ move  Enter insert  1-9 quick pick  Esc close")
	return sp.theme.PaletteBox.Render(
		lipgloss.JoinVertical(lipgloss.Left, strings.Join(items, ""), help),
	)
}

// =============================================================================
// INSERTION
// =============================================================================

// InsertAt replaces the rune range [start, end) of value with text and returns
// the new value and the cursor position after the inserted text. Out of range
// positions are clamped to the end of value.
func InsertAt(value string, start, end int, text string) (string, int) {
	runes := []rune(value)
	if start < 0 || start > len(runes) {
		start = len(runes)
	}
	if end < start || end > len(runes) {
		end = start
	}
	next := string(runes[:start]) + text + string(runes[end:])
	return next, start + len([]rune(text))
}

// InsertAtCursor inserts text at the input's cursor, moves the cursor after
// it and focuses the input.
func InsertAtCursor(input *textinput.Model, text string) tea.Cmd {
	pos := input.Position()
	next, cursor := InsertAt(input.Value(), pos, pos, text)
	input.SetValue(next)
	input.SetCursor(cursor)
	return input.Focus()
}
