// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/harold-tui/internal/mathfmt"
)

func newNormalizeCmd(e *env) *cobra.Command {
	var structuresOnly bool
	cmd := &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Rewrite LaTeX and plain-text math the way Harold prints it",
		Long: `Rewrite math notation into readable Unicode. Reads stdin when no text is given.

Examples:
  harold normalize '$\sqrt{9} \times \pi$'
  echo 'x >= 3 and y != 2' | harold normalize`,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(e.stdin)
				if err != nil {
					return NewCommandError("normalize", "read", err)
				}
				text = strings.TrimRight(string(data), "\n")
			}
			if structuresOnly {
				fmt.Fprintln(e.stdout, mathfmt.NormalizeThrough(text, mathfmt.StageStructures))
				return nil
			}
			fmt.Fprintln(e.stdout, mathfmt.Normalize(text))
			return nil
		},
	}
	cmd.Flags().BoolVar(&structuresOnly, "structures-only", false, "stop after LaTeX structures (\\frac stays a slash)")
	return cmd
}
