// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jeranaias/harold-tui/internal/model"
	"github.com/jeranaias/harold-tui/internal/ui/styles"
)

// WriterSink prints turns to a line-oriented writer such as stdout.
// Revealed turns are typed out one cluster per interval; a zero interval
// prints them at once.
type WriterSink struct {
	mu       sync.Mutex
	w        io.Writer
	interval time.Duration
	thinking string
	turns    []model.Turn
	sleep    func(time.Duration)
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer, interval time.Duration) *WriterSink {
	return &WriterSink{w: w, interval: interval, sleep: time.Sleep}
}

// AppendTurn implements Sink.
func (s *WriterSink) AppendTurn(turn model.Turn) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
	fmt.Fprintln(s.w, lineFor(turn))
	return turn.ID
}

// AppendThinking implements Sink. The placeholder stays on the current line
// so RemoveTurn can erase it.
func (s *WriterSink) AppendThinking() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	turn := model.NewThinking()
	s.thinking = turn.ID
	fmt.Fprint(s.w, styles.ThinkingLabel+"...")
	return turn.ID
}

// RemoveTurn implements Sink. Only the thinking line can be removed.
func (s *WriterSink) RemoveTurn(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" || id != s.thinking {
		return
	}
	s.thinking = ""
	fmt.Fprint(s.w, "\r\033[K")
}

// RevealTurn implements Sink.
func (s *WriterSink) RevealTurn(turn model.Turn) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
	if s.interval <= 0 {
		fmt.Fprintln(s.w, turn.Text)
		return turn.ID
	}
	for _, c := range Graphemes(turn.Text) {
		fmt.Fprint(s.w, c)
		s.sleep(s.interval)
	}
	fmt.Fprintln(s.w)
	return turn.ID
}

// Turns returns the printed turns in order.
func (s *WriterSink) Turns() []model.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Turn(nil), s.turns...)
}

func lineFor(turn model.Turn) string {
	switch {
	case turn.IsImage():
		return fmt.Sprintf("%s: [image] %s", turn.Role.DisplayName(), turn.ImageName())
	case turn.Role == model.RoleUser:
		return fmt.Sprintf("%s: %s", turn.Role.DisplayName(), turn.Text)
	default:
		return turn.Text
	}
}
