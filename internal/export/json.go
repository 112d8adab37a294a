// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports sessions to JSON format.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

type jsonSession struct {
	Subject   string     `json:"subject"`
	StartedAt time.Time  `json:"started_at"`
	Turns     []jsonTurn `json:"turns"`
}

type jsonTurn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Export converts a session to JSON format.
func (e *JSONExporter) Export(s *Session) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("session is nil")
	}

	out := jsonSession{Subject: s.Subject, StartedAt: s.StartedAt, Turns: make([]jsonTurn, 0, len(s.Turns))}
	for _, t := range s.Turns {
		jt := jsonTurn{ID: t.ID, Role: t.Role.String(), Text: t.Text, CreatedAt: t.CreatedAt}
		if t.ImagePath != "" {
			jt.Image = filepath.Base(t.ImagePath)
		}
		out.Turns = append(out.Turns, jt)
	}
	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
