// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the harold TUI.

# Palettes (colors.go)

Five named palettes are available, in cycling order:

	ocean     blue and teal (default)
	forest    greens
	sunset    oranges and pinks
	midnight  deep purples
	paper     greys, high contrast

Every color is a Lip Gloss AdaptiveColor, so each palette works on light and
dark terminals. A name that is not registered renders with the ocean palette.

# Themes (theme.go)

NewTheme builds every style the UI needs from a palette:

	theme := styles.NewTheme("forest")
	fmt.Println(theme.UserBubble.Render("hello"))

# Animations (animations.go)

ThinkingFrame drives the "Harold is thinking" dots and DefaultRevealInterval
is the per-character delay of the reply reveal.
*/
package styles
