// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/harold-tui/internal/chrome"
	"github.com/jeranaias/harold-tui/internal/client"
	"github.com/jeranaias/harold-tui/internal/conversation"
	"github.com/jeranaias/harold-tui/internal/export"
	"github.com/jeranaias/harold-tui/internal/ui/components"
	"github.com/jeranaias/harold-tui/internal/ui/styles"
	"github.com/jeranaias/harold-tui/internal/voice"
)

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case replyMsg:
		return m.handleReply(msg)

	case revealTickMsg:
		if m.transcript.Advance() {
			m.refresh(false)
			return m, m.revealTick()
		}
		m.revealing = false
		m.refresh(false)
		return m, nil

	case pulseTickMsg:
		if !m.transcript.HasThinking() {
			m.pulsing = false
			return m, nil
		}
		m.transcript.Pulse()
		m.repaint()
		return m, pulseTick()

	case voiceEventMsg:
		return m.handleVoiceEvent(msg.ev)

	case voiceClosedMsg:
		return m.handleVoiceEvent(voice.Event{Kind: voice.EventEnd})

	case logoutDoneMsg:
		return m, tea.Quit

	case components.SymbolChosenMsg:
		if m.locked {
			return m, nil
		}
		m.layout()
		return m, components.InsertAtCursor(&m.compose, msg.Symbol)

	case spinner.TickMsg:
		if !m.ctrl.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.updateInputs(msg)
}

// updateInputs forwards msg to the focused input.
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.attaching {
		m.attach, cmd = m.attach.Update(msg)
	} else {
		m.compose, cmd = m.compose.Update(msg)
	}
	return cmd
}

// =============================================================================
// KEYS
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.voice.Stop()
		return m, tea.Quit
	}

	if m.symbols.Visible() {
		_, cmd := m.symbols.Update(msg)
		if !m.symbols.Visible() {
			m.layout()
		}
		return m, cmd
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Sidebar):
		m.sidebar.Toggle()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.applyTheme(m.themes.Next())
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Subject):
		m.header.SetSubject(m.subjects.Next())
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		return m, m.logoutCmd()

	case key.Matches(msg, m.keys.Export):
		m.saveTranscript()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Voice):
		return m, m.toggleVoice()
	}

	if m.locked {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Symbols):
		m.symbols.Show()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Attach):
		m.attaching = true
		m.attach.SetValue(m.attachment)
		m.attach.CursorEnd()
		m.compose.Blur()
		m.layout()
		return m, m.attach.Focus()

	case key.Matches(msg, m.keys.Cancel):
		if m.attaching {
			m.focusCompose()
		} else {
			m.attachment = ""
		}
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		if m.attaching {
			return m, m.confirmAttach()
		}
		return m, m.send()
	}

	return m, m.updateInputs(msg)
}

// =============================================================================
// SENDING
// =============================================================================

func (m *Model) send() tea.Cmd {
	req, ok := m.ctrl.Begin()
	if !ok {
		return nil
	}
	m.layout()

	cmds := []tea.Cmd{m.execute(req), m.spinner.Tick}
	if !m.pulsing {
		m.pulsing = true
		cmds = append(cmds, pulseTick())
	}
	return tea.Batch(cmds...)
}

// execute runs the request off the update loop.
func (m *Model) execute(req *conversation.Request) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return replyMsg{req: req, out: ctrl.Execute(ctx, req)}
	}
}

func (m *Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	m.ctrl.Settle(msg.req, msg.out)
	if target := m.exit.Target(); target != "" {
		m.log.Info().Str("target", target).Msg("leaving chat")
		return m, tea.Quit
	}

	if m.revealEvery <= 0 {
		m.transcript.FinishReveal()
	}
	m.layout()

	cmds := []tea.Cmd{textinput.Blink}
	if m.transcript.Animating() && !m.revealing {
		m.revealing = true
		cmds = append(cmds, m.revealTick())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) revealTick() tea.Cmd {
	return tea.Tick(m.revealEvery, func(time.Time) tea.Msg { return revealTickMsg{} })
}

func pulseTick() tea.Cmd {
	return tea.Tick(styles.ThinkingRate, func(time.Time) tea.Msg { return pulseTickMsg{} })
}

// confirmAttach accepts the typed path if it names an image.
func (m *Model) confirmAttach() tea.Cmd {
	path := expandHome(strings.TrimSpace(m.attach.Value()))
	if path == "" {
		m.attachment = ""
		m.focusCompose()
		m.layout()
		return nil
	}
	if !client.IsImageFile(path) {
		m.setNotice(fmt.Sprintf("%s is not a readable image", filepath.Base(path)), true)
		return nil
	}
	m.attachment = path
	m.focusCompose()
	m.layout()
	return textinput.Blink
}

// saveTranscript writes the conversation so far as Markdown.
func (m *Model) saveTranscript() {
	session := export.NewSession(m.subjects.Current(), m.transcript.Turns())
	path, err := export.ToFile(session, export.NewMarkdownExporter(m.exportOpts), m.exportOpts)
	if err != nil {
		m.log.Warn().Err(err).Msg("transcript export failed")
		m.setNotice("nothing saved: "+err.Error(), true)
		return
	}
	m.log.Info().Str("path", path).Msg("transcript exported")
	m.setNotice("saved "+path, false)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// =============================================================================
// VOICE AND LOGOUT
// =============================================================================

func (m *Model) toggleVoice() tea.Cmd {
	if !m.voice.Available() {
		m.setNotice(voice.UnsupportedLabel, true)
		return nil
	}
	started, err := m.voice.Toggle(m.ctx, m.ctrl.Pending())
	if err != nil {
		m.setNotice("voice: "+err.Error(), true)
	}
	m.layout()
	if started {
		return waitVoice(m.voice.Recognizer().Events())
	}
	return nil
}

func waitVoice(events <-chan voice.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return voiceClosedMsg{}
		}
		return voiceEventMsg{ev: ev}
	}
}

func (m *Model) handleVoiceEvent(ev voice.Event) (tea.Model, tea.Cmd) {
	text, changed := m.voice.Handle(ev, m.compose.Value())
	if changed {
		m.compose.SetValue(text)
		m.compose.CursorEnd()
	}
	if ev.Kind == voice.EventResult {
		return m, waitVoice(m.voice.Recognizer().Events())
	}
	if ev.Kind == voice.EventError {
		m.setNotice("voice capture failed", true)
	}
	m.layout()
	return m, nil
}

func (m *Model) logoutCmd() tea.Cmd {
	ctx, backend, exit := m.ctx, m.backend, m.exit
	return func() tea.Msg {
		chrome.Logout(ctx, backend, exit)
		return logoutDoneMsg{}
	}
}
