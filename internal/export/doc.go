// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export saves a chat transcript to a file.
//
// # Supported Formats
//
//   - Markdown: Human-readable, one section per turn
//   - JSON: Machine-readable turn list
//
// # Usage
//
//	session := export.NewSession("math", transcript.Turns())
//	exporter, _ := export.ForFormat("md", nil)
//	path, err := export.ToFile(session, exporter, nil)
package export
