// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation implements the send lifecycle of the chat surface.
//
// A send is split into three steps so it fits an event loop:
//
//	req, ok := ctrl.Begin()          // on the UI goroutine
//	out := ctrl.Execute(ctx, req)     // anywhere; performs the one network call
//	ctrl.Settle(req, out)            // back on the UI goroutine
//
// Send runs all three synchronously. Only one request is ever outstanding: a
// Begin while a request is pending does nothing.
package conversation

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/harold-tui/internal/client"
	"github.com/jeranaias/harold-tui/internal/mathfmt"
	"github.com/jeranaias/harold-tui/internal/model"
	"github.com/jeranaias/harold-tui/internal/transcript"
)

// ReplyPrefix starts every assistant reply.
const ReplyPrefix = model.AssistantName + ": "

// FallbackReply is shown for any failed request.
const FallbackReply = ReplyPrefix + "Something went wrong."

// =============================================================================
// STATE
// =============================================================================

// State is the controller's request state.
type State int

const (
	StateIdle State = iota
	StatePending
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	default:
		return "unknown"
	}
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Compose is the user's input area.
type Compose interface {
	Text() string
	// File returns the attached image path, or "".
	File() string
	Clear()
	Focus()
}

// Controls are the inputs disabled while a request is pending.
type Controls interface {
	SetLocked(locked bool)
}

// Voice is the voice capture control.
type Voice interface {
	Active() bool
	Stop()
}

// Sender performs the network requests.
type Sender interface {
	SendText(ctx context.Context, message string) (*client.Reply, error)
	SendImage(ctx context.Context, path, prompt string) (*client.Reply, error)
}

// Deps wires a Controller. Voice and Controls may be nil.
type Deps struct {
	Compose  Compose
	Controls Controls
	Voice    Voice
	Sender   Sender
	Sink     transcript.Sink
}

// =============================================================================
// REQUESTS
// =============================================================================

// Kind is the outbound request type.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// Request is one accepted send.
type Request struct {
	Kind    Kind
	Message string
	File    string

	thinkingID string
	settled    bool
}

// Outcome is the result of Execute.
type Outcome struct {
	Reply string
	Err   error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the pending-request guard and drives the transcript.
// Begin and Settle must be called from a single goroutine.
type Controller struct {
	deps  Deps
	state State
	log   zerolog.Logger
}

// New creates an idle controller.
func New(deps Deps) *Controller {
	return &Controller{
		deps:  deps,
		state: StateIdle,
		log:   log.With().Str("component", "conversation").Logger(),
	}
}

// State returns the current request state.
func (c *Controller) State() State {
	return c.state
}

// Pending reports whether a request is outstanding.
func (c *Controller) Pending() bool {
	return c.state == StatePending
}

// Begin accepts a send if the controller is idle and there is something to
// send. It renders the user's turn and the thinking placeholder, locks the
// controls and returns the request to execute.
func (c *Controller) Begin() (*Request, bool) {
	if c.state == StatePending {
		c.log.Debug().Msg("send ignored: request pending")
		return nil, false
	}

	message := strings.TrimSpace(c.deps.Compose.Text())
	file := strings.TrimSpace(c.deps.Compose.File())
	if message == "" && file == "" {
		return nil, false
	}

	if c.deps.Voice != nil && c.deps.Voice.Active() {
		c.log.Debug().Msg("stopping voice capture before send")
		c.deps.Voice.Stop()
	}

	if message != "" {
		c.deps.Sink.AppendTurn(model.NewUserText(message))
	}
	if file != "" {
		c.deps.Sink.AppendTurn(model.NewUserImage(file))
	}

	req := &Request{Kind: KindText, Message: message}
	if file != "" {
		req.Kind = KindImage
		req.File = file
	}

	c.state = StatePending
	if c.deps.Controls != nil {
		c.deps.Controls.SetLocked(true)
	}
	req.thinkingID = c.deps.Sink.AppendThinking()

	c.log.Info().
		Bool("image", req.Kind == KindImage).
		Int("chars", len(message)).
		Msg("request started")
	return req, true
}

// Execute performs the request's single network call.
func (c *Controller) Execute(ctx context.Context, req *Request) Outcome {
	var (
		reply *client.Reply
		err   error
	)
	if req.Kind == KindImage {
		reply, err = c.deps.Sender.SendImage(ctx, req.File, req.Message)
	} else {
		reply, err = c.deps.Sender.SendText(ctx, req.Message)
	}
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Reply: reply.Reply}
}

// Settle renders the outcome and returns the controller to idle.
// Settling the same request twice does nothing.
func (c *Controller) Settle(req *Request, out Outcome) {
	if req == nil || req.settled {
		return
	}
	req.settled = true

	c.deps.Sink.RemoveTurn(req.thinkingID)

	switch {
	case out.Err == nil:
		c.deps.Sink.RevealTurn(model.NewAssistant(mathfmt.Normalize(ReplyPrefix + out.Reply)))
		c.log.Info().Int("chars", len(out.Reply)).Msg("request succeeded")
	case errors.Is(out.Err, client.ErrUnauthorized):
		c.log.Warn().Err(out.Err).Msg("request unauthorized; leaving chat instead of showing fallback")
	default:
		c.deps.Sink.AppendTurn(model.NewAssistant(FallbackReply))
		c.log.Warn().Err(out.Err).Msg("request failed")
	}

	c.state = StateIdle
	if c.deps.Controls != nil {
		c.deps.Controls.SetLocked(false)
	}
	c.deps.Compose.Clear()
	c.deps.Compose.Focus()
}

// Send runs Begin, Execute and Settle in sequence and reports whether a
// request was made.
func (c *Controller) Send(ctx context.Context) bool {
	req, ok := c.Begin()
	if !ok {
		return false
	}
	c.Settle(req, c.Execute(ctx, req))
	return true
}
