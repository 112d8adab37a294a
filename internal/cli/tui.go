// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/harold-tui/internal/ui/chat"
	"github.com/jeranaias/harold-tui/internal/voice"
)

// runTUI starts the full-screen chat, or line mode when there is no terminal.
func runTUI(ctx context.Context, e *env) error {
	if !IsTTY() || !IsStdoutTTY() {
		log.Info().Msg("no terminal attached; using line mode")
		return runChat(ctx, e)
	}

	c, err := e.newClient(nil)
	if err != nil {
		return NewCommandError("harold", "connect", err)
	}
	store, closeStore := e.openPrefs(ctx)
	defer closeStore()

	m, err := chat.New(chat.Options{
		Backend:    c,
		Store:      store,
		Config:     e.cfg,
		Recognizer: voice.Detect(e.cfg.Voice),
		Context:    ctx,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return NewCommandError("harold", "run", err)
	}

	if target := m.Exit(); target != "" {
		fmt.Fprintf(e.stdout, "Continue at %s\n", target)
	}
	return nil
}
