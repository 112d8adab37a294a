// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea model for the Harold chat screen.

The model wires the compose and attachment inputs, the transcript viewport,
the sidebar and the symbol palette to a conversation.Controller. Network
calls run inside tea.Cmd goroutines and come back as messages, so the
controller is only touched from the update loop.

# Files

  - keys.go: KeyMap and help bindings
  - messages.go: Bubble Tea message types
  - model.go: Model, Options and the collaborator adapters
  - update.go: message and key handling
  - view.go: layout and rendering

# Leaving the chat

When the backend answers 401 or the user logs out, the model records the
absolute URL of the page to visit and quits. Callers read it with Exit.
*/
package chat
