// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chrome manages the state around the conversation: the sidebar,
// the color theme, the tutoring subject and logout. Every change is
// persisted immediately so it survives a restart.
package chrome

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/harold-tui/internal/client"
	"github.com/jeranaias/harold-tui/internal/config"
	"github.com/jeranaias/harold-tui/internal/prefs"
	"github.com/jeranaias/harold-tui/internal/ui/styles"
)

// logger is resolved per call so it follows logging setup done after init.
func logger() zerolog.Logger {
	return log.With().Str("component", "chrome").Logger()
}

func persist(store prefs.Store, key, value string) {
	if err := store.Set(key, value); err != nil {
		l := logger()
		l.Warn().Err(err).Str("key", key).Msg("failed to persist preference")
	}
}

// =============================================================================
// SIDEBAR
// =============================================================================

// Sidebar glyphs and labels.
const (
	GlyphOpen    = "◀"
	GlyphClosed  = "▶"
	LabelOpen    = "Collapse sidebar"
	LabelClosed  = "Expand sidebar"
	sidebarTrue  = "true"
	sidebarFalse = "false"
)

// Sidebar is the collapsible side panel.
type Sidebar struct {
	store prefs.Store
	open  bool
}

// NewSidebar restores the sidebar from store. Anything but "true" means
// closed. The restored state is written back.
func NewSidebar(store prefs.Store) *Sidebar {
	saved, _ := store.Get(prefs.KeySidebarOpen)
	s := &Sidebar{store: store}
	s.Set(saved == sidebarTrue)
	return s
}

// Open reports whether the sidebar is expanded.
func (s *Sidebar) Open() bool {
	return s.open
}

// Set opens or closes the sidebar and persists the state.
func (s *Sidebar) Set(open bool) {
	s.open = open
	value := sidebarFalse
	if open {
		value = sidebarTrue
	}
	persist(s.store, prefs.KeySidebarOpen, value)
}

// Toggle flips the sidebar and returns the new state.
func (s *Sidebar) Toggle() bool {
	s.Set(!s.open)
	return s.open
}

// Glyph is the toggle button's symbol.
func (s *Sidebar) Glyph() string {
	if s.open {
		return GlyphOpen
	}
	return GlyphClosed
}

// Label describes what the toggle will do.
func (s *Sidebar) Label() string {
	if s.open {
		return LabelOpen
	}
	return LabelClosed
}

// =============================================================================
// THEMES
// =============================================================================

// Themes tracks the selected color theme.
type Themes struct {
	store   prefs.Store
	current string
}

// NewThemes restores the theme from store, using fallback (or the default
// palette) when none was saved.
func NewThemes(store prefs.Store, fallback string) *Themes {
	name, _ := store.Get(prefs.KeyThemeName)
	if name == "" {
		name = fallback
	}
	if name == "" {
		name = styles.DefaultPalette
	}
	t := &Themes{store: store}
	t.Set(name)
	return t
}

// Current returns the selected theme name. It is stored as chosen even when
// no palette of that name exists.
func (t *Themes) Current() string {
	return t.current
}

// Set selects and persists a theme.
func (t *Themes) Set(name string) {
	t.current = name
	persist(t.store, prefs.KeyThemeName, name)
}

// Next selects the theme after the current one and returns it.
func (t *Themes) Next() string {
	names := styles.PaletteNames()
	next := names[0]
	for i, n := range names {
		if n == t.current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	t.Set(next)
	return next
}

// Names returns the selectable theme names.
func (t *Themes) Names() []string {
	return styles.PaletteNames()
}

// =============================================================================
// SUBJECTS
// =============================================================================

// SubjectSetter receives subject changes.
type SubjectSetter interface {
	SetSubject(subject string)
}

// Subjects tracks the tutoring subject and applies it to the client.
type Subjects struct {
	store   prefs.Store
	target  SubjectSetter
	current string
}

// NewSubjects restores the subject from store, using fallback when none was
// saved or the saved one is unknown.
func NewSubjects(store prefs.Store, target SubjectSetter, fallback string) *Subjects {
	name, _ := store.Get(prefs.KeySubjectName)
	if !config.ValidSubject(name) {
		name = fallback
	}
	if !config.ValidSubject(name) {
		name = config.Subjects[0]
	}
	s := &Subjects{store: store, target: target}
	_ = s.Set(name)
	return s
}

// Current returns the selected subject.
func (s *Subjects) Current() string {
	return s.current
}

// Set selects, persists and applies a subject.
func (s *Subjects) Set(name string) error {
	if !config.ValidSubject(name) {
		return fmt.Errorf("unknown subject %q", name)
	}
	s.current = name
	if s.target != nil {
		s.target.SetSubject(name)
	}
	persist(s.store, prefs.KeySubjectName, name)
	return nil
}

// Next selects the subject after the current one and returns it.
func (s *Subjects) Next() string {
	names := config.Subjects
	next := names[0]
	for i, n := range names {
		if n == s.current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	_ = s.Set(next)
	return next
}

// Names returns the selectable subjects.
func (s *Subjects) Names() []string {
	out := make([]string, len(config.Subjects))
	copy(out, config.Subjects)
	return out
}

// =============================================================================
// LOGOUT
// =============================================================================

// LogoutClient ends the backend session.
type LogoutClient interface {
	Logout(ctx context.Context) error
}

// Logout asks the backend to end the session and then navigates to the login
// page, whatever the outcome of the request.
func Logout(ctx context.Context, c LogoutClient, nav client.Navigator) {
	defer nav.Navigate(client.LoginPath)
	if err := c.Logout(ctx); err != nil {
		l := logger()
		l.Warn().Err(err).Msg("logout request failed")
	}
}
