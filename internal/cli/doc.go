// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the harold command line.
//
// # Commands
//
//   - harold: full-screen chat (line mode when stdin is not a terminal)
//   - chat: line-mode chat with history
//   - ask: one question, reply printed as markdown
//   - normalize: run text through the math normalizer
//   - logout: end the backend session
//   - config: show, get, set or locate configuration
//   - version: print build information
//
// Every command accepts --config, --base-url, --subject, --theme and
// --log-level. Errors are printed as "Error: ..." and mapped to exit codes
// by ExitCode.
package cli
