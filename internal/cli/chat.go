// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat for harold.
//
// Command: chat
// Short:   Chat with Harold line by line
//
// Interactive Commands (during chat):
//   /image PATH [PROMPT]  Send an image, optionally with a question
//   /voice                Dictate the next message
//   /subject [NAME]       Show or switch the tutoring subject
//   /normalize TEXT       Show how Harold would print TEXT
//   /export [md|json]     Save the transcript
//   /logout               End the session
//   /help, /h             Show available commands
//   /quit, /q             Exit chat
//   Ctrl+C, Ctrl+D        Exit chat

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/harold-tui/internal/chrome"
	"github.com/jeranaias/harold-tui/internal/client"
	"github.com/jeranaias/harold-tui/internal/config"
	"github.com/jeranaias/harold-tui/internal/conversation"
	"github.com/jeranaias/harold-tui/internal/export"
	"github.com/jeranaias/harold-tui/internal/mathfmt"
	"github.com/jeranaias/harold-tui/internal/transcript"
	"github.com/jeranaias/harold-tui/internal/voice"
)

// ChatPrompt is the line-mode prompt.
const ChatPrompt = "you> "

// voiceDrainTimeout bounds the wait for a transcription after capture stops.
const voiceDrainTimeout = 30 * time.Second

var slashCommands = []string{"/image ", "/voice", "/subject ", "/normalize ", "/export", "/logout", "/help", "/quit"}

func newChatCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with Harold line by line",
		Long: `Start a line-mode chat. Type a message and press Enter.

Commands:
  /image PATH [PROMPT]  send an image, optionally with a question
  /voice                dictate the next message
  /subject [NAME]       show or switch the tutoring subject
  /normalize TEXT       show how Harold would print TEXT
  /export [md|json]     save the transcript under ~/.harold/exports
  /logout               end the session
  /quit                 exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd.Context(), e)
		},
	}
}

// =============================================================================
// INPUT HANDLING
// =============================================================================

// lineReader reads one line with an optional pre-filled draft.
type lineReader interface {
	PromptWithSuggestion(prompt, text string, pos int) (string, error)
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeSlash)

	historyFile, err := config.DataPath("chat_history")
	if err != nil {
		historyFile = filepath.Join(os.TempDir(), "harold_chat_history")
	}

	cli := &ChatCLI{line: line, historyFile: historyFile}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// PromptWithSuggestion reads a line, starting from text, and records it in
// the history.
func (c *ChatCLI) PromptWithSuggestion(prompt, text string, pos int) (string, error) {
	input, err := c.line.PromptWithSuggestion(prompt, text, pos)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

func completeSlash(line string) []string {
	if !strings.HasPrefix(line, "/") {
		return nil
	}
	var out []string
	for _, c := range slashCommands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// SESSION
// =============================================================================

// lineCompose is the compose area of line mode: the last line read.
type lineCompose struct {
	text string
	file string
}

func (c *lineCompose) Text() string { return c.text }
func (c *lineCompose) File() string { return c.file }
func (c *lineCompose) Clear()       { c.text, c.file = "", "" }
func (c *lineCompose) Focus()       {}

// lineBackend is what line mode needs from the backend.
type lineBackend interface {
	conversation.Sender
	chrome.LogoutClient
	ResolveURL(target string) string
}

// chatSession is one line-mode conversation.
type chatSession struct {
	backend    lineBackend
	ctrl       *conversation.Controller
	compose    *lineCompose
	sink       *transcript.WriterSink
	subjects   *chrome.Subjects
	voice      *voice.Adapter
	exportOpts *export.Options
	out        io.Writer
	draft      string
	target     string
}

func newChatSession(backend lineBackend, sink *transcript.WriterSink, subjects *chrome.Subjects, rec voice.Recognizer, out io.Writer) *chatSession {
	s := &chatSession{
		backend:    backend,
		compose:    &lineCompose{},
		sink:       sink,
		subjects:   subjects,
		voice:      voice.NewAdapter(rec),
		exportOpts: export.DefaultOptions(),
		out:        out,
	}
	s.ctrl = conversation.New(conversation.Deps{
		Compose: s.compose,
		Voice:   s.voice,
		Sender:  backend,
		Sink:    sink,
	})
	return s
}

// Navigate implements client.Navigator. Requests run on the session
// goroutine, so no locking is needed.
func (s *chatSession) Navigate(target string) {
	if s.target == "" {
		s.target = s.backend.ResolveURL(target)
	}
}

func runChat(ctx context.Context, e *env) error {
	var session *chatSession
	nav := client.NavigatorFunc(func(target string) { session.Navigate(target) })

	c, err := e.newClient(nav)
	if err != nil {
		return NewCommandError("chat", "connect", err)
	}
	store, closeStore := e.openPrefs(ctx)
	defer closeStore()

	sink := transcript.NewWriterSink(e.stdout, e.cfg.RevealInterval())
	subjects := chrome.NewSubjects(store, c, e.cfg.Server.Subject)
	session = newChatSession(c, sink, subjects, voice.Detect(e.cfg.Voice), e.stdout)

	in := NewChatCLI()
	defer in.Close()
	return session.run(ctx, in)
}

// run reads lines until the user quits or the session leaves the chat.
func (s *chatSession) run(ctx context.Context, in lineReader) error {
	fmt.Fprintf(s.out, "Harold (%s). Type /help for commands.\n", s.subjects.Current())

	for {
		draft := s.draft
		s.draft = ""
		input, err := in.PromptWithSuggestion(ChatPrompt, draft, -1)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return NewCommandError("chat", "read", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if done := s.command(ctx, in, input); done {
				return nil
			}
		} else {
			s.compose.text = input
			s.ctrl.Send(ctx)
		}

		if s.target != "" {
			fmt.Fprintf(s.out, "Continue at %s\n", s.target)
			return nil
		}
	}
}

// command runs a slash command and reports whether the session should end.
func (s *chatSession) command(ctx context.Context, in lineReader, input string) bool {
	name, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Fprintln(s.out, "Commands: /image PATH [PROMPT], /voice, /subject [NAME], /normalize TEXT, /export [md|json], /logout, /quit")

	case "/image":
		path, prompt, _ := strings.Cut(rest, " ")
		if path == "" {
			fmt.Fprintln(s.out, "Usage: /image PATH [PROMPT]")
			return false
		}
		if !client.IsImageFile(path) {
			fmt.Fprintf(s.out, "%s is not a readable image\n", path)
			return false
		}
		s.compose.file = path
		s.compose.text = strings.TrimSpace(prompt)
		s.ctrl.Send(ctx)

	case "/subject":
		if rest == "" {
			fmt.Fprintf(s.out, "Subject: %s (available: %s)\n", s.subjects.Current(), strings.Join(s.subjects.Names(), ", "))
			return false
		}
		if err := s.subjects.Set(strings.ToLower(rest)); err != nil {
			fmt.Fprintln(s.out, err)
			return false
		}
		fmt.Fprintf(s.out, "Subject: %s\n", s.subjects.Current())

	case "/normalize":
		fmt.Fprintln(s.out, mathfmt.Normalize(rest))

	case "/voice":
		s.dictate(ctx, in)

	case "/export":
		s.export(rest)

	case "/logout":
		chrome.Logout(ctx, s.backend, s)

	default:
		fmt.Fprintf(s.out, "Unknown command %s. Type /help.\n", name)
	}
	return false
}

// export saves the transcript so far.
func (s *chatSession) export(format string) {
	exporter, err := export.ForFormat(format, s.exportOpts)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	session := export.NewSession(s.subjects.Current(), s.sink.Turns())
	path, err := export.ToFile(session, exporter, s.exportOpts)
	if err != nil {
		fmt.Fprintf(s.out, "Nothing saved: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Saved %s\n", path)
}

// dictate records until the user presses Enter and leaves the transcript as
// the draft of the next prompt.
func (s *chatSession) dictate(ctx context.Context, in lineReader) {
	if !s.voice.Available() {
		fmt.Fprintln(s.out, voice.UnsupportedLabel)
		return
	}
	started, err := s.voice.Toggle(ctx, s.ctrl.Pending())
	if err != nil {
		fmt.Fprintf(s.out, "Voice capture failed to start: %v\n", err)
		return
	}
	if !started {
		return
	}

	_, _ = in.PromptWithSuggestion("Listening... press Enter to stop ", "", -1)
	s.voice.Stop()

	events := s.voice.Recognizer().Events()
	timeout := time.NewTimer(voiceDrainTimeout)
	defer timeout.Stop()

	text := ""
	for s.voice.Active() {
		select {
		case ev, ok := <-events:
			if !ok {
				ev = voice.Event{Kind: voice.EventEnd}
			}
			text, _ = s.voice.Handle(ev, text)
			if ev.Kind == voice.EventError {
				fmt.Fprintln(s.out, "Voice capture failed.")
			}
		case <-timeout.C:
			log.Warn().Msg("no transcription before timeout")
			s.voice.Handle(voice.Event{Kind: voice.EventEnd}, text)
		case <-ctx.Done():
			return
		}
	}
	s.draft = text
}
