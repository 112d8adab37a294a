// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/harold-tui/internal/chrome"
	"github.com/jeranaias/harold-tui/internal/client"
)

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the backend session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := e.newClient(nil)
			if err != nil {
				return NewCommandError("logout", "connect", err)
			}
			chrome.Logout(cmd.Context(), c, client.NavigatorFunc(func(target string) {
				fmt.Fprintf(e.stdout, "Logged out. Log in again at %s\n", c.ResolveURL(target))
			}))
			return nil
		},
	}
}
