// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command for harold.
//
// Command: ask [question]
// Short:   Ask Harold one question
//
// Examples:
//   harold ask "What is 3/4 of 20?"
//   harold ask --image worksheet.png "Is question 2 right?"
//   harold ask --raw "Explain pi" > answer.txt
//
// Flags:
//   -i, --image PATH    Send an image; the question becomes its prompt
//   --raw               Print the reply without markdown rendering

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeranaias/harold-tui/internal/client"
	"github.com/jeranaias/harold-tui/internal/conversation"
	"github.com/jeranaias/harold-tui/internal/mathfmt"
)

type askOptions struct {
	image string
	raw   bool
}

func newAskCmd(e *env) *cobra.Command {
	var opts askOptions
	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask Harold one question",
		Example: `  harold ask "What is 3/4 of 20?"
  harold ask --image worksheet.png "Is question 2 right?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" && opts.image == "" {
				return &UsageError{Reason: "ask needs a question or --image"}
			}
			return runAsk(cmd.Context(), e, question, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.image, "image", "i", "", "image to send with the question")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print the reply without markdown rendering")
	return cmd
}

func runAsk(ctx context.Context, e *env, question string, opts askOptions) error {
	c, err := e.newClient(nil)
	if err != nil {
		return NewCommandError("ask", "connect", err)
	}

	var reply *client.Reply
	if opts.image != "" {
		reply, err = c.SendImage(ctx, opts.image, question)
	} else {
		reply, err = c.SendText(ctx, question)
	}
	if err != nil {
		var unauth *client.UnauthorizedError
		if errors.As(err, &unauth) {
			return fmt.Errorf("session expired; log in at %s: %w", c.ResolveURL(unauth.Redirect), err)
		}
		return NewCommandError("ask", "send", err)
	}

	text := mathfmt.Normalize(conversation.ReplyPrefix + reply.Reply)
	if !opts.raw && IsStdoutTTY() {
		text = renderMarkdown(text, GetTerminalWidth())
	}
	fmt.Fprintln(e.stdout, strings.TrimRight(text, "\n"))
	return nil
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown for terminal display and returns the input
// unchanged if rendering fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
