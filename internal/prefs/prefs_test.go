// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "harold", "prefs.db")

	store, err := OpenSQLite(ctx, path)
	require.NoError(t, err)

	_, ok := store.Get(KeySidebarOpen)
	assert.False(t, ok, "fresh store is empty")

	require.NoError(t, store.Set(KeySidebarOpen, "true"))
	require.NoError(t, store.Set(KeyThemeName, "forest"))
	require.NoError(t, store.Set(KeyThemeName, "sunset"))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok := reopened.Get(KeySidebarOpen)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	v, ok = reopened.Get(KeyThemeName)
	assert.True(t, ok)
	assert.Equal(t, "sunset", v, "last write wins")
	assert.Equal(t, path, reopened.Path())
}

func TestSQLiteStore_Closed(t *testing.T) {
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "double close is harmless")

	assert.ErrorIs(t, store.Set(KeyThemeName, "x"), ErrClosed)
	_, ok := store.Get(KeyThemeName)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	var s Store = NewMemoryStore()

	_, ok := s.Get("k")
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "v1"))
	require.NoError(t, s.Set("k", "v2"))
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}
