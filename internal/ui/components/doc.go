// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the styled building blocks of the chat screen.

  - Header (header.go) - title bar with the active subject.
  - StatusBar (statusbar.go) - status, transient notes and key hints.
  - SidebarView (sidebar.go) - theme, subject and voice settings panel.
  - SymbolPalette (symbols.go) - math symbol picker that inserts at the cursor.

Components hold no application state of their own beyond what is needed to
render; the chat model copies values into them before calling View.
*/
package components
