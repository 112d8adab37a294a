// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/jeranaias/harold-tui/internal/config"
)

// DefaultLang is used when no language can be derived from the environment.
const DefaultLang = "en-US"

// FilePlaceholder in recorder arguments is replaced by the capture file.
const FilePlaceholder = "{file}"

// defaultRecorderArgs are used when no arguments are configured.
// "rec" stops after 1.5 seconds of silence; "arecord" after 15 seconds.
var defaultRecorderArgs = map[string][]string{
	"rec":     {"-q", "-c", "1", "-r", "16000", FilePlaceholder, "silence", "1", "0.1", "1%", "1", "1.5", "1%"},
	"sox":     {"-q", "-d", "-c", "1", "-r", "16000", FilePlaceholder, "silence", "1", "0.1", "1%", "1", "1.5", "1%"},
	"arecord": {"-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-d", "15", FilePlaceholder},
}

// =============================================================================
// LANGUAGE
// =============================================================================

// ResolveLang returns a canonical BCP 47 tag for configured, falling back to
// the locale in $LC_ALL, $LANG and finally DefaultLang.
func ResolveLang(configured string) string {
	candidates := []string{configured, os.Getenv("LC_ALL"), os.Getenv("LANG")}
	for _, c := range candidates {
		if tag, ok := parseLocale(c); ok {
			return tag.String()
		}
	}
	return DefaultLang
}

// parseLocale accepts BCP 47 tags and POSIX locales such as "en_GB.UTF-8".
func parseLocale(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}

// whisperLanguage reduces a tag to the ISO 639-1 code transcription APIs take.
func whisperLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}

// =============================================================================
// COMMAND RECOGNIZER
// =============================================================================

// CommandConfig configures a CommandRecognizer.
type CommandConfig struct {
	Recorder      string
	RecorderArgs  []string
	TranscribeURL string
	APIKey        string
	Model         string
	Language      string
	HTTPClient    *http.Client
}

// CommandRecognizer records audio with an external program and sends the
// recording to a Whisper-compatible transcription endpoint.
type CommandRecognizer struct {
	cfg    CommandConfig
	lang   string
	events chan Event
	log    zerolog.Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	stopped bool
}

// NewCommandRecognizer creates a recognizer for cfg.
func NewCommandRecognizer(cfg CommandConfig) *CommandRecognizer {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &CommandRecognizer{
		cfg:    cfg,
		lang:   ResolveLang(cfg.Language),
		events: make(chan Event, 4),
		log:    log.With().Str("component", "voice").Logger(),
	}
}

// Detect returns a recognizer for the voice configuration, or nil when voice
// is disabled or the recorder is not installed.
func Detect(cfg config.VoiceConfig) Recognizer {
	if !cfg.Enabled || cfg.Recorder == "" {
		return nil
	}
	path, err := exec.LookPath(cfg.Recorder)
	if err != nil {
		log.Debug().Str("recorder", cfg.Recorder).Msg("voice recorder not found")
		return nil
	}
	return NewCommandRecognizer(CommandConfig{
		Recorder:      path,
		RecorderArgs:  recorderArgs(cfg.Recorder, cfg.RecorderArgs),
		TranscribeURL: cfg.TranscribeURL,
		APIKey:        cfg.APIKey,
		Model:         cfg.Model,
		Language:      cfg.Language,
	})
}

func recorderArgs(recorder string, configured []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return defaultRecorderArgs[filepath.Base(recorder)]
}

// Lang implements Recognizer.
func (r *CommandRecognizer) Lang() string {
	return r.lang
}

// Events implements Recognizer.
func (r *CommandRecognizer) Events() <-chan Event {
	return r.events
}

// Start implements Recognizer.
func (r *CommandRecognizer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		return ErrBusy
	}
	r.drain()

	f, err := os.CreateTemp("", "harold-voice-*.wav")
	if err != nil {
		return fmt.Errorf("create capture file: %w", err)
	}
	path := f.Name()
	f.Close()

	args := make([]string, 0, len(r.cfg.RecorderArgs))
	for _, a := range recorderArgs(r.cfg.Recorder, r.cfg.RecorderArgs) {
		args = append(args, strings.ReplaceAll(a, FilePlaceholder, path))
	}

	cmd := exec.CommandContext(ctx, r.cfg.Recorder, args...)
	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return fmt.Errorf("start recorder: %w", err)
	}

	r.cmd = cmd
	r.stopped = false
	r.log.Debug().Str("recorder", r.cfg.Recorder).Str("file", path).Msg("recording")

	go r.finish(ctx, cmd, path)
	return nil
}

// Stop implements Recognizer. The recorder is interrupted so it can finalize
// the audio file; transcription still runs afterwards.
func (r *CommandRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd == nil || r.stopped {
		return
	}
	r.stopped = true
	if runtime.GOOS == "windows" {
		_ = r.cmd.Process.Kill()
		return
	}
	_ = r.cmd.Process.Signal(os.Interrupt)
}

// drain drops events a previous capture queued but nobody read.
func (r *CommandRecognizer) drain() {
	for {
		select {
		case ev := <-r.events:
			r.log.Debug().Int("kind", int(ev.Kind)).Msg("dropped stale event")
		default:
			return
		}
	}
}

func (r *CommandRecognizer) finish(ctx context.Context, cmd *exec.Cmd, path string) {
	defer os.Remove(path)
	waitErr := cmd.Wait()

	r.mu.Lock()
	stopped := r.stopped
	r.mu.Unlock()

	// The capture stays busy until its last event is queued, so Start can
	// discard whatever the previous listener left unread.
	defer func() {
		r.mu.Lock()
		r.cmd = nil
		r.mu.Unlock()
	}()

	if waitErr != nil && !stopped {
		r.events <- Event{Kind: EventError, Err: fmt.Errorf("recorder: %w", waitErr)}
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		r.events <- Event{Kind: EventEnd}
		return
	}

	text, err := TranscribeFile(ctx, r.cfg.HTTPClient, path, TranscribeOptions{
		Endpoint: r.cfg.TranscribeURL,
		APIKey:   r.cfg.APIKey,
		Model:    r.cfg.Model,
		Language: whisperLanguage(r.lang),
	})
	if err != nil {
		r.events <- Event{Kind: EventError, Err: err}
		return
	}
	if strings.TrimSpace(text) != "" {
		r.events <- Event{Kind: EventResult, Transcript: text}
	}
	r.events <- Event{Kind: EventEnd}
}
