// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/harold-tui/internal/chrome"
	"github.com/jeranaias/harold-tui/internal/client"
	"github.com/jeranaias/harold-tui/internal/config"
	"github.com/jeranaias/harold-tui/internal/conversation"
	"github.com/jeranaias/harold-tui/internal/export"
	"github.com/jeranaias/harold-tui/internal/prefs"
	"github.com/jeranaias/harold-tui/internal/transcript"
	"github.com/jeranaias/harold-tui/internal/ui/components"
	"github.com/jeranaias/harold-tui/internal/ui/styles"
	"github.com/jeranaias/harold-tui/internal/voice"
)

// ComposePlaceholder is shown in the empty compose input.
const ComposePlaceholder = "Ask Harold anything..."

// AttachPlaceholder is shown in the empty attachment input.
const AttachPlaceholder = "path/to/image.png"

// Backend is what the chat screen needs from the Harold backend.
// *client.Client satisfies it.
type Backend interface {
	conversation.Sender
	chrome.LogoutClient
	chrome.SubjectSetter
	SetNavigator(nav client.Navigator)
	ResolveURL(target string) string
}

// Options configures a Model.
type Options struct {
	Backend Backend
	// Store persists sidebar, theme and subject. Nil keeps them in memory.
	Store  prefs.Store
	Config *config.Config
	// Recognizer captures speech. Nil disables the voice control.
	Recognizer voice.Recognizer
	Context    context.Context
	// ExportDir receives saved transcripts. Empty uses the ui.export_dir setting.
	ExportDir string
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctx        context.Context
	backend    Backend
	ctrl       *conversation.Controller
	transcript *transcript.Transcript
	voice      *voice.Adapter
	sidebar    *chrome.Sidebar
	themes     *chrome.Themes
	subjects   *chrome.Subjects
	exit       *exitRecorder
	exportOpts *export.Options

	theme       *styles.Theme
	header      *components.Header
	status      *components.StatusBar
	sidebarView *components.SidebarView
	symbols     *components.SymbolPalette
	help        help.Model
	keys        KeyMap
	showHelp    bool

	compose    textinput.Model
	attach     textinput.Model
	attachment string
	attaching  bool
	locked     bool
	notice     string
	noticeErr  bool

	viewport     viewport.Model
	spinner      spinner.Model
	revealEvery  time.Duration
	revealing    bool
	pulsing      bool
	shownVersion uint64

	width  int
	height int
	ready  bool
	log    zerolog.Logger
}

// New creates the chat screen.
func New(opts Options) (*Model, error) {
	if opts.Backend == nil {
		return nil, errors.New("chat: backend is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	store := opts.Store
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := &Model{
		ctx:         ctx,
		backend:     opts.Backend,
		transcript:  transcript.New(),
		voice:       voice.NewAdapter(opts.Recognizer),
		sidebar:     chrome.NewSidebar(store),
		themes:      chrome.NewThemes(store, cfg.UI.Theme),
		subjects:    chrome.NewSubjects(store, opts.Backend, cfg.Server.Subject),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		viewport:    viewport.New(80, 20),
		revealEvery: cfg.RevealInterval(),
		log:         log.With().Str("component", "chat").Logger(),
	}
	m.exportOpts = export.DefaultOptions()
	if opts.ExportDir != "" {
		m.exportOpts.OutputDir = opts.ExportDir
	}
	m.exit = &exitRecorder{resolve: opts.Backend.ResolveURL}
	opts.Backend.SetNavigator(m.exit)

	m.compose = textinput.New()
	m.compose.Placeholder = ComposePlaceholder
	m.compose.Prompt = "> "
	m.attach = textinput.New()
	m.attach.Placeholder = AttachPlaceholder
	m.attach.Prompt = "image: "

	m.header = components.NewHeader(nil)
	m.header.SetSubject(m.subjects.Current())
	m.header.Host = opts.Backend.ResolveURL("")
	m.status = components.NewStatusBar(nil)
	m.sidebarView = components.NewSidebarView(nil)
	m.symbols = components.NewSymbolPalette(nil)
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.applyTheme(m.themes.Current())

	m.ctrl = conversation.New(conversation.Deps{
		Compose:  composeAdapter{m},
		Controls: controlsAdapter{m},
		Voice:    m.voice,
		Sender:   opts.Backend,
		Sink:     m.transcript,
	})

	m.compose.Focus()
	return m, nil
}

// Exit returns the absolute URL the user should continue at, or "" when the
// chat was simply closed.
func (m *Model) Exit() string {
	return m.exit.Target()
}

// Transcript returns the conversation shown on screen.
func (m *Model) Transcript() *transcript.Transcript {
	return m.transcript
}

// Pending reports whether a request is outstanding.
func (m *Model) Pending() bool {
	return m.ctrl.Pending()
}

// Theme returns the active theme.
func (m *Model) Theme() *styles.Theme {
	return m.theme
}

func (m *Model) applyTheme(name string) {
	m.theme = styles.NewTheme(name)
	m.header.SetTheme(m.theme)
	m.status.SetTheme(m.theme)
	m.sidebarView.SetTheme(m.theme)
	m.symbols.SetTheme(m.theme)
	m.spinner.Style = m.theme.Spinner
	m.compose.PromptStyle = m.theme.InputPrompt
	m.compose.PlaceholderStyle = m.theme.InputPlaceholder
	m.attach.PromptStyle = m.theme.AttachPrompt
	m.attach.PlaceholderStyle = m.theme.InputPlaceholder
	m.help.Styles.ShortKey = m.theme.ShortcutKey
	m.help.Styles.FullKey = m.theme.ShortcutKey
	m.help.Styles.ShortDesc = m.theme.ShortcutDesc
	m.help.Styles.FullDesc = m.theme.ShortcutDesc
}

func (m *Model) focusCompose() {
	m.attaching = false
	m.attach.Blur()
	m.compose.Focus()
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

// =============================================================================
// COLLABORATOR ADAPTERS
// =============================================================================

type composeAdapter struct{ m *Model }

func (c composeAdapter) Text() string { return c.m.compose.Value() }
func (c composeAdapter) File() string { return c.m.attachment }

func (c composeAdapter) Clear() {
	c.m.compose.Reset()
	c.m.attach.Reset()
	c.m.attachment = ""
}

func (c composeAdapter) Focus() { c.m.focusCompose() }

type controlsAdapter struct{ m *Model }

func (c controlsAdapter) SetLocked(locked bool) {
	c.m.locked = locked
	if locked {
		c.m.compose.Blur()
		c.m.attach.Blur()
		c.m.attaching = false
		c.m.symbols.Hide()
	}
}

// exitRecorder is the client's Navigator. It may be called from request
// goroutines; the first target wins.
type exitRecorder struct {
	mu      sync.Mutex
	resolve func(string) string
	target  string
}

func (e *exitRecorder) Navigate(target string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.target == "" {
		e.target = e.resolve(target)
	}
}

func (e *exitRecorder) Target() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.target
}
