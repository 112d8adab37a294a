// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for harold.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Backend URL, tutoring subject, session cookie, timeout
//   - UIConfig: Theme fallback, reveal speed, preference storage
//   - VoiceConfig: Recorder command and transcription endpoint
//   - LogConfig: Diagnostic log level and destination
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the cli package)
//   - Environment variables (HAROLD_*), including a .env file in the working directory
//   - ~/.harold/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	timeout := cfg.RequestTimeout()
//
// Values can be read and written with dot notation, which backs the
// "harold config get/set" commands:
//
//	v, _ := cfg.Get("server.subject")
//	_ = cfg.Set("ui.theme", "forest")
package config
