// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chrome

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/harold-tui/internal/client"
	"github.com/jeranaias/harold-tui/internal/prefs"
)

type failingStore struct{}

func (failingStore) Get(string) (string, bool) { return "", false }
func (failingStore) Set(string, string) error  { return errors.New("disk full") }

// =============================================================================
// SIDEBAR
// =============================================================================

func TestSidebar_DefaultsClosed(t *testing.T) {
	tests := []struct {
		name  string
		saved string
		set   bool
		want  bool
	}{
		{"absent", "", false, false},
		{"true", "true", true, true},
		{"false", "false", true, false},
		{"garbage", "yes", true, false},
		{"capitalised", "True", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := prefs.NewMemoryStore()
			if tt.set {
				require.NoError(t, store.Set(prefs.KeySidebarOpen, tt.saved))
			}
			s := NewSidebar(store)
			assert.Equal(t, tt.want, s.Open())

			v, ok := store.Get(prefs.KeySidebarOpen)
			assert.True(t, ok, "initial state is written back")
			if tt.want {
				assert.Equal(t, "true", v)
			} else {
				assert.Equal(t, "false", v)
			}
		})
	}
}

func TestSidebar_ToggleGlyphLabel(t *testing.T) {
	s := NewSidebar(prefs.NewMemoryStore())
	assert.Equal(t, GlyphClosed, s.Glyph())
	assert.Equal(t, LabelClosed, s.Label())

	assert.True(t, s.Toggle())
	assert.Equal(t, "◀", s.Glyph())
	assert.Equal(t, "Collapse sidebar", s.Label())

	assert.False(t, s.Toggle())
	assert.Equal(t, "▶", s.Glyph())
	assert.Equal(t, "Expand sidebar", s.Label())
}

func TestSidebar_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	store, err := prefs.OpenSQLite(ctx, path)
	require.NoError(t, err)
	NewSidebar(store).Toggle()
	require.NoError(t, store.Close())

	reloaded, err := prefs.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reloaded.Close()

	assert.True(t, NewSidebar(reloaded).Open())
}

func TestSidebar_StoreFailureKeepsState(t *testing.T) {
	s := NewSidebar(failingStore{})
	assert.True(t, s.Toggle())
	assert.True(t, s.Open())
}

// =============================================================================
// THEMES
// =============================================================================

func TestThemes(t *testing.T) {
	store := prefs.NewMemoryStore()

	th := NewThemes(store, "")
	assert.Equal(t, "ocean", th.Current())
	v, _ := store.Get(prefs.KeyThemeName)
	assert.Equal(t, "ocean", v)

	assert.Equal(t, "forest", th.Next())
	th.Set("paper")
	assert.Equal(t, "ocean", th.Next(), "cycles back to the start")

	th.Set("neon")
	v, _ = store.Get(prefs.KeyThemeName)
	assert.Equal(t, "neon", v, "stored value mirrors the selection")
	assert.Equal(t, "ocean", th.Next(), "unknown names restart the cycle")

	assert.Equal(t, "sunset", NewThemes(prefs.NewMemoryStore(), "sunset").Current())

	th.Set("midnight")
	assert.Equal(t, "midnight", NewThemes(store, "sunset").Current(), "saved theme wins over fallback")
	assert.Len(t, th.Names(), 5)
}

// =============================================================================
// SUBJECTS
// =============================================================================

type subjectRecorder struct{ subjects []string }

func (r *subjectRecorder) SetSubject(s string) { r.subjects = append(r.subjects, s) }

func TestSubjects(t *testing.T) {
	store := prefs.NewMemoryStore()
	rec := &subjectRecorder{}

	s := NewSubjects(store, rec, "science")
	assert.Equal(t, "science", s.Current())
	assert.Equal(t, []string{"science"}, rec.subjects, "applied on startup")

	assert.Equal(t, "history", s.Next())
	assert.Error(t, s.Set("art"))
	assert.Equal(t, "history", s.Current())

	v, _ := store.Get(prefs.KeySubjectName)
	assert.Equal(t, "history", v)

	again := NewSubjects(store, nil, "math")
	assert.Equal(t, "history", again.Current())

	require.NoError(t, store.Set(prefs.KeySubjectName, "art"))
	assert.Equal(t, "math", NewSubjects(store, nil, "nope").Current())

	assert.Equal(t, []string{"math", "science", "history", "english"}, s.Names())
}

// =============================================================================
// LOGOUT
// =============================================================================

type fakeLogout struct {
	err   error
	calls int
}

func (f *fakeLogout) Logout(context.Context) error {
	f.calls++
	return f.err
}

func TestLogout_NavigatesRegardless(t *testing.T) {
	for _, err := range []error{nil, errors.New("network down"), &client.StatusError{Code: 500}} {
		var targets []string
		nav := client.NavigatorFunc(func(target string) { targets = append(targets, target) })
		lc := &fakeLogout{err: err}

		Logout(context.Background(), lc, nav)

		assert.Equal(t, 1, lc.calls)
		assert.Equal(t, []string{"/login"}, targets)
	}
}
