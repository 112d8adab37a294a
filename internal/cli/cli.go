// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/harold-tui/internal/client"
	"github.com/jeranaias/harold-tui/internal/config"
	"github.com/jeranaias/harold-tui/internal/logging"
	"github.com/jeranaias/harold-tui/internal/prefs"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// skipConfig marks commands that must run without loading the configuration.
const skipConfig = "skip-config"

// globalOptions are the persistent flags.
type globalOptions struct {
	configPath string
	baseURL    string
	subject    string
	theme      string
	logLevel   string
}

// env is the state shared by one invocation's commands.
type env struct {
	opts      globalOptions
	cfg       *config.Config
	logCloser io.Closer

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newEnv() *env {
	return &env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	e := newEnv()
	defer e.close()

	root := newRootCmd(e)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return ExitCode(err)
	}
	return ExitSuccess
}

// NewRootCmd returns the harold command tree bound to the process streams.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newEnv())
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "harold",
		Short: "Terminal chat client for the Harold tutor",
		Long: `harold talks to a Harold tutor backend from the terminal.

Examples:
  harold                                  # full-screen chat
  harold chat                             # line-mode chat
  harold ask "what is the derivative of x^2?"
  harold ask --image page1.png "check my work"
  echo '$\frac{1}{2}$' | harold normalize
  harold config set server.base_url https://tutor.example.com`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return e.load()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), e)
		},
	}
	root.SetIn(e.stdin)
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&e.opts.configPath, "config", "", "config file (default ~/.harold/config.toml)")
	flags.StringVar(&e.opts.baseURL, "base-url", "", "backend base URL")
	flags.StringVar(&e.opts.subject, "subject", "", "tutoring subject ("+strings.Join(config.Subjects, ", ")+")")
	flags.StringVar(&e.opts.theme, "theme", "", "theme used when none is saved")
	flags.StringVar(&e.opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newChatCmd(e),
		newAskCmd(e),
		newNormalizeCmd(e),
		newLogoutCmd(e),
		newConfigCmd(e),
		newVersionCmd(e),
	)
	return root
}

// =============================================================================
// RUNTIME WIRING
// =============================================================================

// load reads the configuration, applies flag overrides and sets up logging.
func (e *env) load() error {
	var (
		cfg *config.Config
		err error
	)
	if e.opts.configPath != "" {
		cfg, err = config.LoadFromPath(e.opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if e.opts.baseURL != "" {
		cfg.Server.BaseURL = strings.TrimSuffix(e.opts.baseURL, "/")
	}
	if e.opts.subject != "" {
		cfg.Server.Subject = e.opts.subject
	}
	if e.opts.theme != "" {
		cfg.UI.Theme = e.opts.theme
	}
	if e.opts.logLevel != "" {
		cfg.Log.Level = e.opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return NewCommandError("harold", "logging", err)
	}
	e.cfg = cfg
	e.logCloser = closer
	config.SetGlobal(cfg)

	log.Debug().
		Str("base_url", cfg.Server.BaseURL).
		Str("subject", cfg.Server.Subject).
		Str("version", Version).
		Msg("configuration loaded")
	return nil
}

func (e *env) close() {
	if e.logCloser != nil {
		_ = e.logCloser.Close()
		e.logCloser = nil
	}
}

// newClient builds the backend client from the loaded configuration.
func (e *env) newClient(nav client.Navigator) (*client.Client, error) {
	return client.New(client.Options{
		BaseURL:       e.cfg.Server.BaseURL,
		Subject:       e.cfg.Server.Subject,
		SessionCookie: e.cfg.Server.SessionCookie,
		Timeout:       e.cfg.RequestTimeout(),
		Navigator:     nav,
	})
}

// openPrefs opens the preference store. When persistence is disabled or the
// database cannot be opened, preferences live in memory for this run.
func (e *env) openPrefs(ctx context.Context) (prefs.Store, func()) {
	if !e.cfg.UI.PersistPrefs {
		return prefs.NewMemoryStore(), func() {}
	}

	path := e.cfg.UI.PrefsPath
	if path == "" {
		p, err := config.DataPath("prefs.db")
		if err != nil {
			log.Warn().Err(err).Msg("no preference path; using memory")
			return prefs.NewMemoryStore(), func() {}
		}
		path = p
	}

	store, err := prefs.OpenSQLite(ctx, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("preference store unavailable; using memory")
		return prefs.NewMemoryStore(), func() {}
	}
	return store, func() { _ = store.Close() }
}
