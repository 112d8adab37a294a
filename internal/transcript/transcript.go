// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript holds the visible conversation and animates assistant
// replies one grapheme cluster at a time.
package transcript

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/rivo/uniseg"

	"github.com/jeranaias/harold-tui/internal/model"
	"github.com/jeranaias/harold-tui/internal/ui/styles"
)

// Sink receives transcript changes from the conversation controller.
type Sink interface {
	// AppendTurn shows a turn in full and returns its id.
	AppendTurn(turn model.Turn) string
	// AppendThinking shows the pending placeholder and returns its id.
	AppendThinking() string
	// RemoveTurn removes the turn with id. Unknown ids are ignored.
	RemoveTurn(id string)
	// RevealTurn shows a turn whose text appears progressively and returns its id.
	RevealTurn(turn model.Turn) string
}

// Graphemes splits text into user-perceived characters.
func Graphemes(text string) []string {
	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

type entry struct {
	turn     model.Turn
	clusters []string
	shown    int
}

func (e *entry) animating() bool {
	return e.shown < len(e.clusters)
}

func (e *entry) visible() string {
	if !e.animating() {
		return e.turn.Text
	}
	return strings.Join(e.clusters[:e.shown], "")
}

// Transcript is an append-only list of turns. It is safe for concurrent use.
type Transcript struct {
	mu      sync.Mutex
	entries []*entry
	version uint64
	frame   int
}

// New creates an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// AppendTurn implements Sink.
func (t *Transcript) AppendTurn(turn model.Turn) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, &entry{turn: turn})
	t.version++
	return turn.ID
}

// AppendThinking implements Sink.
func (t *Transcript) AppendThinking() string {
	return t.AppendTurn(model.NewThinking())
}

// RemoveTurn implements Sink.
func (t *Transcript) RemoveTurn(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, e := range t.entries {
		if e.turn.ID == id {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			t.version++
			return
		}
	}
}

// RevealTurn implements Sink. The turn starts empty and grows with Advance.
func (t *Transcript) RevealTurn(turn model.Turn) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, &entry{turn: turn, clusters: Graphemes(turn.Text)})
	t.version++
	return turn.ID
}

// Advance reveals one more cluster of every animating turn and reports
// whether any turn is still animating afterwards.
func (t *Transcript) Advance() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	still := false
	for _, e := range t.entries {
		if !e.animating() {
			continue
		}
		e.shown++
		t.version++
		if e.animating() {
			still = true
		}
	}
	return still
}

// Animating reports whether any turn is still being revealed.
func (t *Transcript) Animating() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.animating() {
			return true
		}
	}
	return false
}

// FinishReveal shows every animating turn in full.
func (t *Transcript) FinishReveal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.animating() {
			e.shown = len(e.clusters)
			t.version++
		}
	}
}

// HasThinking reports whether a thinking placeholder is shown.
func (t *Transcript) HasThinking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.turn.Thinking {
			return true
		}
	}
	return false
}

// Pulse advances the thinking dots by one frame.
func (t *Transcript) Pulse() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frame++
	t.version++
}

// Version increases on every visible change.
func (t *Transcript) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

// Len returns the number of shown turns, including placeholders.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Turns returns a copy of the shown turns in order.
func (t *Transcript) Turns() []model.Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Turn, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.turn
	}
	return out
}

// Visible returns the currently shown text of the turn with id.
func (t *Transcript) Visible(id string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.turn.ID == id {
			return e.visible(), true
		}
	}
	return "", false
}

// =============================================================================
// RENDERING
// =============================================================================

// Render draws the transcript at the given width.
func (t *Transcript) Render(width int, theme *styles.Theme) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if width < 20 {
		width = 20
	}
	// Bubbles take at most three quarters of the width, minus border and padding
	textWidth := width*3/4 - 4

	blocks := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		blocks = append(blocks, t.renderEntry(e, width, textWidth, theme))
	}
	return strings.Join(blocks, "\n")
}

func (t *Transcript) renderEntry(e *entry, width, textWidth int, theme *styles.Theme) string {
	turn := e.turn
	switch {
	case turn.Thinking:
		return theme.ThinkingText.Render(styles.ThinkingLabel) +
			theme.ThinkingDots.Render(styles.ThinkingFrame(t.frame))

	case turn.Role == model.RoleUser:
		var body string
		if turn.IsImage() {
			body = theme.ImageChip.Render("image") + " " + turn.ImageName()
		} else {
			body = wrapText(turn.Text, textWidth)
		}
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, theme.UserBubble.Render(body))

	default:
		body := wrapText(e.visible(), textWidth)
		if e.animating() {
			body += theme.RevealCursor.Render(styles.RevealCursorGlyph)
		}
		return theme.AssistantBubble.Render(body)
	}
}

// wrapText word-wraps text, hard-wrapping words longer than the width.
func wrapText(text string, width int) string {
	if width < 1 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}
