// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration commands for harold.
//
// Command: config [show|get|set|path]
//
// Examples:
//   harold config                              Show effective configuration
//   harold config get server.subject
//   harold config set server.base_url https://tutor.example.com
//   harold config set voice.recorder_args "-q -d 10 {file}"
//   harold config path

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/harold-tui/internal/config"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage harold configuration",
		Long: `View or edit the harold configuration.

Keys:
  ` + strings.Join(config.Keys(), "\n  "),
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return configShow(e)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration (secrets redacted)",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return configShow(e)
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				v, err := e.cfg.Get(args[0])
				if err != nil {
					return &UsageError{Reason: err.Error()}
				}
				if list, ok := v.([]string); ok {
					v = strings.Join(list, " ")
				}
				fmt.Fprintln(e.stdout, v)
				return nil
			},
		},
		&cobra.Command{
			Use:         "set <key> <value>",
			Short:       "Set a configuration value in the config file",
			Args:        cobra.ExactArgs(2),
			Annotations: map[string]string{skipConfig: "true"},
			RunE: func(_ *cobra.Command, args []string) error {
				return configSet(e, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:         "path",
			Short:       "Print the config file path",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{skipConfig: "true"},
			RunE: func(*cobra.Command, []string) error {
				path, err := e.configFile()
				if err != nil {
					return err
				}
				fmt.Fprintln(e.stdout, path)
				return nil
			},
		},
	)
	return cmd
}

func (e *env) configFile() (string, error) {
	if e.opts.configPath != "" {
		return e.opts.configPath, nil
	}
	return config.ConfigPath()
}

func configShow(e *env) error {
	fmt.Fprint(e.stdout, e.cfg.String())
	return nil
}

// configSet edits the file alone, so environment overrides are not written
// back.
func configSet(e *env, key, value string) error {
	path, err := e.configFile()
	if err != nil {
		return err
	}

	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return NewCommandError("config", "set", err)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return NewCommandError("config", "set", statErr)
	}

	if err := cfg.Set(key, value); err != nil {
		return &UsageError{Reason: err.Error()}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return NewCommandError("config", "set", err)
	}
	fmt.Fprintf(e.stdout, "%s updated in %s\n", key, path)
	return nil
}
