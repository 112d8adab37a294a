// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	for _, name := range PaletteNames() {
		theme := NewTheme(name)
		if theme == nil {
			t.Fatalf("NewTheme(%q) returned nil", name)
		}
		if theme.Palette.Name != name {
			t.Errorf("NewTheme(%q).Palette = %q", name, theme.Palette.Name)
		}
	}
}

func TestNewTheme_UnknownFallsBack(t *testing.T) {
	theme := NewTheme("neon")
	if theme.Name != "neon" {
		t.Errorf("theme should remember the requested name, got %q", theme.Name)
	}
	if theme.Palette.Name != DefaultPalette {
		t.Errorf("unknown theme should render as %q, got %q", DefaultPalette, theme.Palette.Name)
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme(DefaultPalette)

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"UserBubble", theme.UserBubble},
		{"AssistantBubble", theme.AssistantBubble},
		{"Sidebar", theme.Sidebar},
		{"InputContainer", theme.InputContainer},
		{"StatusBar", theme.StatusBar},
		{"PaletteBox", theme.PaletteBox},
	}

	for _, s := range styles {
		if rendered := s.style.Render("test"); !strings.Contains(rendered, "test") {
			t.Errorf("%s style lost its content: %q", s.name, rendered)
		}
	}
}

// =============================================================================
// PALETTE TESTS
// =============================================================================

func TestPaletteNames(t *testing.T) {
	names := PaletteNames()
	if len(names) != 5 || names[0] != DefaultPalette {
		t.Fatalf("PaletteNames() = %v", names)
	}
	for _, n := range names {
		if _, ok := LookupPalette(n); !ok {
			t.Errorf("palette %q listed but not registered", n)
		}
	}

	names[0] = "changed"
	if PaletteNames()[0] != DefaultPalette {
		t.Error("PaletteNames() must return a copy")
	}
}

func TestThinkingFrame(t *testing.T) {
	want := []string{".  ", ".. ", "...", ".  "}
	for i, w := range want {
		if got := ThinkingFrame(i); got != w {
			t.Errorf("ThinkingFrame(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestRenderHelpers(t *testing.T) {
	if !strings.Contains(RenderError("boom"), "[X] boom") {
		t.Error("RenderError should include the indicator")
	}
	if !strings.Contains(RenderSuccess("done"), "[OK] done") {
		t.Error("RenderSuccess should include the indicator")
	}
}
