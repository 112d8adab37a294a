// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/harold-tui/internal/ui/components"
)

const minWidth = 30

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Starting Harold..."
	}
	m.syncChrome()

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView.View(), m.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footerView())
}

// footerView renders everything under the transcript.
func (m *Model) footerView() string {
	var parts []string

	if m.symbols.Visible() {
		parts = append(parts, m.symbols.View())
	}

	switch {
	case m.attaching:
		parts = append(parts, m.attach.View())
	case m.attachment != "":
		parts = append(parts, m.theme.ImageChip.Render("image")+" "+
			filepath.Base(m.attachment)+m.theme.ShortcutDesc.Render("  Esc removes"))
	}

	container := m.theme.InputContainer
	if m.locked {
		container = m.theme.InputContainerLocked
	}
	parts = append(parts, container.Width(m.innerWidth()).Render(m.compose.View()))
	parts = append(parts, m.status.View())

	if m.showHelp {
		parts = append(parts, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// syncChrome copies state into the view components.
func (m *Model) syncChrome() {
	m.sidebarView.Open = m.sidebar.Open()
	m.sidebarView.Glyph = m.sidebar.Glyph()
	m.sidebarView.ToggleHint = m.sidebar.Label()
	m.sidebarView.Themes = m.themes.Names()
	m.sidebarView.Theme = m.themes.Current()
	m.sidebarView.Subjects = m.subjects.Names()
	m.sidebarView.Subject = m.subjects.Current()
	m.sidebarView.VoiceLabel = m.voice.Label()

	m.status.Message = m.notice
	switch {
	case m.ctrl.Pending():
		m.status.Status = components.StatusThinking
		m.status.Message = m.spinner.View()
	case m.voice.Active():
		m.status.Status = components.StatusListening
	case m.notice != "" && m.noticeErr:
		m.status.Status = components.StatusError
	default:
		m.status.Status = components.StatusReady
	}
}

func (m *Model) screenWidth() int {
	if m.width < minWidth {
		return minWidth
	}
	return m.width
}

func (m *Model) innerWidth() int {
	return m.screenWidth() - m.theme.InputContainer.GetHorizontalFrameSize()
}

// layout sizes every component for the current terminal and state.
func (m *Model) layout() {
	w := m.screenWidth()
	m.syncChrome()

	m.header.SetWidth(w)
	m.status.Width = w
	m.help.Width = w

	inputWidth := m.innerWidth() - lipgloss.Width(m.compose.Prompt) - 1
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.compose.Width = inputWidth
	m.attach.Width = inputWidth

	used := lipgloss.Height(m.header.View()) + lipgloss.Height(m.footerView())
	height := m.height - used
	if height < 1 {
		height = 1
	}

	m.sidebarView.Height = height
	vpWidth := w - m.sidebarView.Width()
	if vpWidth < 10 {
		vpWidth = 10
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = height
	m.refresh(true)
}

// refresh re-renders the transcript when it changed and keeps the newest
// turn in view.
func (m *Model) refresh(force bool) {
	v := m.transcript.Version()
	if v == m.shownVersion && !force {
		return
	}
	m.shownVersion = v
	m.viewport.SetContent(m.transcript.Render(m.viewport.Width, m.theme))
	m.viewport.GotoBottom()
}

// repaint re-renders the transcript in place. Thinking-dot frames use it so a
// user who scrolled up is not pulled back down.
func (m *Model) repaint() {
	v := m.transcript.Version()
	if v == m.shownVersion {
		return
	}
	m.shownVersion = v
	m.viewport.SetContent(m.transcript.Render(m.viewport.Width, m.theme))
}
