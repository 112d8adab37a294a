// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice turns speech into text for the compose field.
//
// A Recognizer is an optional capability. When none is available the Adapter
// stays permanently disabled and explains why through its label.
package voice

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Labels shown on the voice control.
const (
	LabelIdle        = "Voice"
	LabelListening   = "Stop"
	UnsupportedLabel = "Voice input is not supported in this terminal."
)

var (
	// ErrUnavailable indicates no recognizer could be set up.
	ErrUnavailable = errors.New("voice input is not available")

	// ErrBusy indicates the recognizer is already capturing.
	ErrBusy = errors.New("voice capture already running")
)

// =============================================================================
// RECOGNIZER CAPABILITY
// =============================================================================

// EventKind classifies recognizer notifications.
type EventKind int

const (
	// EventResult carries a recognized utterance.
	EventResult EventKind = iota
	// EventEnd means the engine stopped listening.
	EventEnd
	// EventError means the engine failed. It is always followed by nothing.
	EventError
)

// Event is a recognizer notification.
type Event struct {
	Kind       EventKind
	Transcript string
	Err        error
}

// Recognizer is a single-shot speech-to-text engine.
type Recognizer interface {
	// Start begins listening. Results arrive on Events.
	Start(ctx context.Context) error
	// Stop asks the engine to finish; it still reports EventEnd by itself.
	Stop()
	// Events delivers results and the terminating End or Error.
	Events() <-chan Event
	// Lang is the BCP 47 recognition language.
	Lang() string
}

// =============================================================================
// ADAPTER
// =============================================================================

// State is the adapter's capture state.
type State int

const (
	StateIdle State = iota
	StateListening
	StateDisabled
)

// Adapter is the voice control's state machine.
type Adapter struct {
	rec   Recognizer
	state State
	log   zerolog.Logger
}

// NewAdapter wraps rec. A nil recognizer yields a disabled adapter.
func NewAdapter(rec Recognizer) *Adapter {
	a := &Adapter{
		rec:   rec,
		state: StateIdle,
		log:   log.With().Str("component", "voice").Logger(),
	}
	if rec == nil {
		a.state = StateDisabled
	}
	return a
}

// State returns the adapter state.
func (a *Adapter) State() State {
	return a.state
}

// Available reports whether a recognizer is wired.
func (a *Adapter) Available() bool {
	return a.state != StateDisabled
}

// Active reports whether the adapter is listening.
func (a *Adapter) Active() bool {
	return a.state == StateListening
}

// Recognizer returns the wrapped recognizer, or nil.
func (a *Adapter) Recognizer() Recognizer {
	return a.rec
}

// Label returns the control's text.
func (a *Adapter) Label() string {
	switch a.state {
	case StateDisabled:
		return UnsupportedLabel
	case StateListening:
		return LabelListening
	default:
		return LabelIdle
	}
}

// Toggle starts listening, or asks a running capture to stop. It does
// nothing while a send is pending or when the adapter is disabled. It
// returns true when a capture was started.
func (a *Adapter) Toggle(ctx context.Context, pending bool) (bool, error) {
	if pending || a.state == StateDisabled {
		return false, nil
	}
	if a.state == StateListening {
		a.Stop()
		return false, nil
	}

	a.state = StateListening
	if err := a.rec.Start(ctx); err != nil {
		a.state = StateIdle
		a.log.Warn().Err(err).Msg("voice capture failed to start")
		return false, err
	}
	a.log.Debug().Str("lang", a.rec.Lang()).Msg("listening")
	return true, nil
}

// Stop requests the engine to stop. The adapter stays listening until the
// engine reports its end.
func (a *Adapter) Stop() {
	if a.state != StateListening {
		return
	}
	a.log.Debug().Msg("stop requested")
	a.rec.Stop()
}

// Handle applies an engine event to the current compose text and returns the
// new text and whether it changed.
func (a *Adapter) Handle(ev Event, current string) (string, bool) {
	switch ev.Kind {
	case EventResult:
		return AppendTranscript(current, ev.Transcript)
	case EventError:
		a.log.Warn().Err(ev.Err).Msg("voice capture error")
		a.state = idleUnlessDisabled(a.state)
	default:
		a.log.Debug().Msg("voice capture ended")
		a.state = idleUnlessDisabled(a.state)
	}
	return current, false
}

func idleUnlessDisabled(s State) State {
	if s == StateDisabled {
		return s
	}
	return StateIdle
}

// AppendTranscript appends the trimmed transcript to current, separated by a
// space unless current is empty or already ends in whitespace.
func AppendTranscript(current, transcript string) (string, bool) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return current, false
	}
	sep := ""
	if current != "" {
		last, _ := utf8.DecodeLastRuneInString(current)
		if !unicode.IsSpace(last) {
			sep = " "
		}
	}
	return current + sep + transcript, true
}
