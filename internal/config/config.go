// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for harold.
//
// Configuration is read from a TOML file, filled with defaults, overridden by
// HAROLD_* environment variables (a .env file in the working directory is
// loaded first), and validated.
//
// Configuration file location:
//   - ~/.harold/config.toml (or the path given with --config)
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/jeranaias/harold-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete harold configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
	Voice  VoiceConfig  `toml:"voice"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig describes the tutor backend.
type ServerConfig struct {
	// BaseURL is the scheme and host of the backend, e.g. "http://localhost:5000"
	BaseURL string `toml:"base_url" env:"HAROLD_BASE_URL"`
	// Subject selects the tutor page: "math", "science", "history" or "english"
	Subject string `toml:"subject" env:"HAROLD_SUBJECT"`
	// SessionCookie is the value of the backend's "session" cookie after login
	SessionCookie string `toml:"session_cookie" env:"HAROLD_SESSION"`
	// TimeoutSecs bounds a single request
	TimeoutSecs int `toml:"timeout_secs" env:"HAROLD_TIMEOUT_SECS"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is used only when no theme has been persisted yet
	Theme string `toml:"theme" env:"HAROLD_THEME"`
	// RevealIntervalMs is the delay between revealed characters of a reply
	RevealIntervalMs int `toml:"reveal_interval_ms" env:"HAROLD_REVEAL_INTERVAL_MS"`
	// PersistPrefs stores sidebar/theme/subject choices across sessions
	PersistPrefs bool `toml:"persist_prefs" env:"HAROLD_PERSIST_PREFS"`
	// PrefsPath is the preference database (empty = ~/.harold/prefs.db)
	PrefsPath string `toml:"prefs_path" env:"HAROLD_PREFS_PATH"`
	// ExportDir receives saved transcripts (empty = ~/.harold/exports)
	ExportDir string `toml:"export_dir" env:"HAROLD_EXPORT_DIR"`
}

// VoiceConfig configures voice capture.
type VoiceConfig struct {
	Enabled bool `toml:"enabled" env:"HAROLD_VOICE"`
	// Recorder is the audio capture binary ("rec" from SoX or "arecord")
	Recorder string `toml:"recorder" env:"HAROLD_VOICE_RECORDER"`
	// RecorderArgs overrides the arguments; "{file}" is replaced by the output path
	RecorderArgs []string `toml:"recorder_args"`
	// TranscribeURL is a Whisper-compatible transcription endpoint
	TranscribeURL string `toml:"transcribe_url" env:"HAROLD_TRANSCRIBE_URL"`
	APIKey        string `toml:"api_key" env:"HAROLD_TRANSCRIBE_KEY"`
	Model         string `toml:"model" env:"HAROLD_TRANSCRIBE_MODEL"`
	// Language is a BCP 47 tag; empty derives it from $LANG
	Language string `toml:"language" env:"HAROLD_VOICE_LANG"`
}

// LogConfig configures the diagnostic log.
type LogConfig struct {
	Level string `toml:"level" env:"HAROLD_LOG_LEVEL"`
	// File receives log output ("-" = stderr, empty = ~/.harold/harold.log)
	File string `toml:"file" env:"HAROLD_LOG_FILE"`
}

// Subjects lists the tutor pages known to the backend.
var Subjects = []string{"math", "science", "history", "english"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:5000",
			Subject:     "math",
			TimeoutSecs: 60,
		},
		UI: UIConfig{
			Theme:            "ocean",
			RevealIntervalMs: 28,
			PersistPrefs:     true,
		},
		Voice: VoiceConfig{
			Enabled:       true,
			Recorder:      "rec",
			TranscribeURL: "https://api.openai.com/v1/audio/transcriptions",
			Model:         "whisper-1",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// RevealInterval returns the reveal animation step.
func (c *Config) RevealInterval() time.Duration {
	return time.Duration(c.UI.RevealIntervalMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the harold configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".harold"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataPath returns a file path inside the config directory.
func DataPath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default path.
// A missing file is not an error; defaults are used.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// ApplyEnvOverrides applies HAROLD_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	return nil
}

// SetDefaults fills zero values that would make the client unusable.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	c.Server.BaseURL = strings.TrimSuffix(c.Server.BaseURL, "/")
	if c.Server.Subject == "" {
		c.Server.Subject = defaults.Server.Subject
	}
	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.RevealIntervalMs <= 0 {
		c.UI.RevealIntervalMs = defaults.UI.RevealIntervalMs
	}
	if c.Voice.Recorder == "" {
		c.Voice.Recorder = defaults.Voice.Recorder
	}
	if c.Voice.TranscribeURL == "" {
		c.Voice.TranscribeURL = defaults.Voice.TranscribeURL
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path with 0600 permissions.
// The file may hold a session cookie and an API key.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# harold configuration file\n")
	buf.WriteString("# Generated by harold - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Server.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{Field: "server.base_url", Message: "must be an absolute http(s) URL"})
	}
	if !ValidSubject(c.Server.Subject) {
		errs = append(errs, ValidationError{
			Field:   "server.subject",
			Message: fmt.Sprintf("must be one of %s", strings.Join(Subjects, ", ")),
		})
	}
	if c.Server.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{Field: "server.timeout_secs", Message: "must be at most 600"})
	}
	if c.UI.RevealIntervalMs > 1000 {
		errs = append(errs, ValidationError{Field: "ui.reveal_interval_ms", Message: "must be at most 1000"})
	}
	if c.Voice.TranscribeURL != "" {
		if u, err := url.Parse(c.Voice.TranscribeURL); err != nil || u.Host == "" {
			errs = append(errs, ValidationError{Field: "voice.transcribe_url", Message: "must be an absolute URL"})
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, ValidationError{Field: "log.level", Message: "must be trace, debug, info, warn, error or disabled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidSubject reports whether name is a known subject.
func ValidSubject(name string) bool {
	for _, s := range Subjects {
		if s == name {
			return true
		}
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "server.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation from its string form.
func (c *Config) Set(key, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value: %w", err)
		}
		field.SetInt(n)
	case reflect.Bool:
		lower := strings.ToLower(value)
		field.SetBool(lower == "1" || lower == "true" || lower == "yes")
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported list type %s", field.Type())
		}
		field.Set(reflect.ValueOf(strings.Fields(value)))
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

// Keys returns all settable configuration keys in dot notation.
func Keys() []string {
	return []string{
		"server.base_url",
		"server.subject",
		"server.session_cookie",
		"server.timeout_secs",
		"ui.theme",
		"ui.reveal_interval_ms",
		"ui.persist_prefs",
		"ui.prefs_path",
		"ui.export_dir",
		"voice.enabled",
		"voice.recorder",
		"voice.recorder_args",
		"voice.transcribe_url",
		"voice.api_key",
		"voice.model",
		"voice.language",
		"log.level",
		"log.file",
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Voice.RecorderArgs != nil {
		clone.Voice.RecorderArgs = append([]string(nil), c.Voice.RecorderArgs...)
	}
	return &clone
}

// String renders the config as TOML with secrets redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Server.SessionCookie != "" {
		safe.Server.SessionCookie = "[REDACTED]"
	}
	if safe.Voice.APIKey != "" {
		safe.Voice.APIKey = "[REDACTED]"
	}

	var buf bytes.Buffer
	_ = toml.NewEncoder(&buf).Encode(safe)
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// Global returns the process configuration, loading defaults on first use.
func Global() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		loaded, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			loaded = Default()
		}
		globalConfig = loaded
	}
	return globalConfig
}

// SetGlobal sets the process configuration. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the process configuration.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
}
