// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/harold-tui/internal/config"
	"github.com/jeranaias/harold-tui/internal/model"
)

func sampleSession() *Session {
	return NewSession("math", []model.Turn{
		model.NewUserText("what is 3*4?"),
		model.NewThinking(),
		model.NewUserImage("/tmp/work/page_1.png"),
		model.NewAssistant("Harold: 3 × 4 is 12"),
	})
}

func TestNewSession_DropsThinking(t *testing.T) {
	s := sampleSession()
	if len(s.Turns) != 3 {
		t.Fatalf("got %d turns, want 3", len(s.Turns))
	}
	if s.StartedAt != s.Turns[0].CreatedAt {
		t.Errorf("StartedAt = %v, want first turn time", s.StartedAt)
	}
}

func TestMarkdownExport(t *testing.T) {
	out, err := NewMarkdownExporter(&Options{}).Export(sampleSession())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	md := string(out)

	for _, want := range []string{
		"subject: math",
		"# Harold math session",
		"### You\n\nwhat is 3*4?",
		"*[image: page\\_1.png]*",
		"### Harold\n\nHarold: 3 × 4 is 12",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "<sub>") {
		t.Error("timestamps written although disabled")
	}
}

func TestMarkdownExport_Empty(t *testing.T) {
	if _, err := NewMarkdownExporter(nil).Export(NewSession("math", nil)); err == nil {
		t.Error("expected error for empty transcript")
	}
}

func TestJSONExport(t *testing.T) {
	out, err := NewJSONExporter().Export(sampleSession())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var decoded jsonSession
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Subject != "math" || len(decoded.Turns) != 3 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if decoded.Turns[1].Image != "page_1.png" || decoded.Turns[1].Role != "user" {
		t.Errorf("image turn = %+v", decoded.Turns[1])
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		ext    string
		ok     bool
	}{
		{"", ".md", true},
		{"MD", ".md", true},
		{"markdown", ".md", true},
		{"json", ".json", true},
		{"html", "", false},
	}
	for _, tt := range tests {
		e, err := ForFormat(tt.format, nil)
		if (err == nil) != tt.ok {
			t.Errorf("ForFormat(%q) err = %v", tt.format, err)
			continue
		}
		if tt.ok && e.FileExtension() != tt.ext {
			t.Errorf("ForFormat(%q) ext = %q, want %q", tt.format, e.FileExtension(), tt.ext)
		}
	}
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	opts := &Options{OutputDir: dir}

	path, err := ToFile(sampleSession(), NewMarkdownExporter(opts), opts)
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "harold_math_") {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		t.Fatalf("read export: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"":            "chat",
		"math":        "math",
		"a/b c":       "a-b_c",
		"x:y?":        "x-y-",
		"tab\there":   "tab_here",
		"bell\x07end": "bell-end",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultOptions_UsesConfiguredDir(t *testing.T) {
	config.ResetGlobalForTesting()
	defer config.ResetGlobalForTesting()

	cfg := config.Default()
	cfg.UI.ExportDir = t.TempDir()
	config.SetGlobal(cfg)

	if got := DefaultOptions().OutputDir; got != cfg.UI.ExportDir {
		t.Errorf("OutputDir = %q, want %q", got, cfg.UI.ExportDir)
	}

	cfg.UI.ExportDir = ""
	if got := DefaultOptions().OutputDir; filepath.Base(got) != "exports" {
		t.Errorf("OutputDir = %q, want the exports data directory", got)
	}
}
