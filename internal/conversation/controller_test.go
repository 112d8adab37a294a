// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/harold-tui/internal/client"
	"github.com/jeranaias/harold-tui/internal/model"
	"github.com/jeranaias/harold-tui/internal/transcript"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeCompose struct {
	text, file string
	cleared    int
	focused    int
}

func (f *fakeCompose) Text() string { return f.text }
func (f *fakeCompose) File() string { return f.file }
func (f *fakeCompose) Clear()       { f.text, f.file = "", ""; f.cleared++ }
func (f *fakeCompose) Focus()       { f.focused++ }

type fakeControls struct {
	locked  bool
	history []bool
}

func (f *fakeControls) SetLocked(locked bool) {
	f.locked = locked
	f.history = append(f.history, locked)
}

type fakeVoice struct {
	active bool
	stops  int
}

func (f *fakeVoice) Active() bool { return f.active }
func (f *fakeVoice) Stop()        { f.stops++ }

type call struct {
	kind          Kind
	message, path string
}

type fakeSender struct {
	reply string
	err   error
	calls []call
}

func (f *fakeSender) SendText(_ context.Context, message string) (*client.Reply, error) {
	f.calls = append(f.calls, call{kind: KindText, message: message})
	if f.err != nil {
		return nil, f.err
	}
	return &client.Reply{Reply: f.reply}, nil
}

func (f *fakeSender) SendImage(_ context.Context, path, prompt string) (*client.Reply, error) {
	f.calls = append(f.calls, call{kind: KindImage, message: prompt, path: path})
	if f.err != nil {
		return nil, f.err
	}
	return &client.Reply{Reply: f.reply}, nil
}

type fixture struct {
	compose  *fakeCompose
	controls *fakeControls
	voice    *fakeVoice
	sender   *fakeSender
	sink     *transcript.Transcript
	ctrl     *Controller
}

func newFixture() *fixture {
	f := &fixture{
		compose:  &fakeCompose{},
		controls: &fakeControls{},
		voice:    &fakeVoice{},
		sender:   &fakeSender{reply: "ok"},
		sink:     transcript.New(),
	}
	f.ctrl = New(Deps{
		Compose:  f.compose,
		Controls: f.controls,
		Voice:    f.voice,
		Sender:   f.sender,
		Sink:     f.sink,
	})
	return f
}

func (f *fixture) texts() []string {
	var out []string
	for _, turn := range f.sink.Turns() {
		switch {
		case turn.Thinking:
			out = append(out, "<thinking>")
		case turn.IsImage():
			out = append(out, "<image:"+turn.ImageName()+">")
		default:
			out = append(out, turn.Text)
		}
	}
	return out
}

// =============================================================================
// TESTS
// =============================================================================

func TestSend_EmptyIsNoop(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		f := newFixture()
		f.compose.text = text

		assert.False(t, f.ctrl.Send(context.Background()))
		assert.Empty(t, f.sender.calls, "no request")
		assert.Equal(t, 0, f.sink.Len(), "no turn")
		assert.Equal(t, StateIdle, f.ctrl.State())
		assert.Empty(t, f.controls.history)
		assert.Equal(t, 0, f.compose.cleared)
	}
}

func TestSend_TextSuccess(t *testing.T) {
	f := newFixture()
	f.compose.text = "  what is pi*2  "
	f.sender.reply = "x*2 is $2\\pi$"

	require.True(t, f.ctrl.Send(context.Background()))

	require.Len(t, f.sender.calls, 1)
	assert.Equal(t, call{kind: KindText, message: "what is pi*2"}, f.sender.calls[0])

	turns := f.sink.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, "what is pi*2", turns[0].Text)
	assert.Equal(t, "Harold: x × 2 is 2π", turns[1].Text)
	assert.True(t, f.sink.Animating(), "reply is revealed progressively")

	assert.Equal(t, StateIdle, f.ctrl.State())
	assert.Equal(t, []bool{true, false}, f.controls.history)
	assert.Equal(t, 1, f.compose.cleared)
	assert.Equal(t, 1, f.compose.focused)
}

func TestSend_ImageTakesPrecedence(t *testing.T) {
	f := newFixture()
	f.compose.text = "solve"
	f.compose.file = "/tmp/hw.png"

	require.True(t, f.ctrl.Send(context.Background()))

	require.Len(t, f.sender.calls, 1)
	assert.Equal(t, call{kind: KindImage, message: "solve", path: "/tmp/hw.png"}, f.sender.calls[0])
	assert.Equal(t, []string{"solve", "<image:hw.png>", "Harold: ok"}, f.texts())
}

func TestSend_ImageWithoutText(t *testing.T) {
	f := newFixture()
	f.compose.file = "/tmp/hw.png"

	require.True(t, f.ctrl.Send(context.Background()))
	assert.Equal(t, call{kind: KindImage, message: "", path: "/tmp/hw.png"}, f.sender.calls[0])
	assert.Equal(t, []string{"<image:hw.png>", "Harold: ok"}, f.texts())
}

func TestBegin_PendingGuard(t *testing.T) {
	f := newFixture()
	f.compose.text = "first"

	req, ok := f.ctrl.Begin()
	require.True(t, ok)
	assert.True(t, f.ctrl.Pending())
	assert.True(t, f.controls.locked)
	assert.Equal(t, []string{"first", "<thinking>"}, f.texts())

	f.compose.text = "second"
	again, ok := f.ctrl.Begin()
	assert.False(t, ok)
	assert.Nil(t, again)
	assert.Equal(t, []string{"first", "<thinking>"}, f.texts(), "no extra optimistic turn")

	f.ctrl.Settle(req, f.ctrl.Execute(context.Background(), req))
	assert.Len(t, f.sender.calls, 1, "only one outbound request")
	assert.False(t, f.ctrl.Pending())
}

func TestSettle_Failure(t *testing.T) {
	f := newFixture()
	f.compose.text = "hello"
	f.sender.err = errors.New("connection refused")

	require.True(t, f.ctrl.Send(context.Background()))

	assert.Equal(t, []string{"hello", FallbackReply}, f.texts())
	assert.False(t, f.sink.Animating(), "fallback is not animated")
	assert.Equal(t, StateIdle, f.ctrl.State())
	assert.False(t, f.controls.locked)
	assert.Equal(t, 1, f.compose.cleared, "compose cleared even on failure")
	assert.Equal(t, 1, f.compose.focused)
}

func TestSettle_StatusError(t *testing.T) {
	f := newFixture()
	f.compose.text = "hello"
	f.sender.err = &client.StatusError{Code: 502}

	require.True(t, f.ctrl.Send(context.Background()))
	assert.Equal(t, []string{"hello", FallbackReply}, f.texts())
}

func TestSettle_Once(t *testing.T) {
	f := newFixture()
	f.compose.text = "hello"

	req, ok := f.ctrl.Begin()
	require.True(t, ok)
	out := f.ctrl.Execute(context.Background(), req)
	f.ctrl.Settle(req, out)
	f.ctrl.Settle(req, out)
	f.ctrl.Settle(nil, out)

	assert.Equal(t, []string{"hello", "Harold: ok"}, f.texts())
	assert.Equal(t, 1, f.compose.cleared)
}

func TestBegin_StopsActiveVoice(t *testing.T) {
	f := newFixture()
	f.compose.text = "spoken words"
	f.voice.active = true

	require.True(t, f.ctrl.Send(context.Background()))
	assert.Equal(t, 1, f.voice.stops)

	f.voice.active = false
	f.compose.text = "typed"
	require.True(t, f.ctrl.Send(context.Background()))
	assert.Equal(t, 1, f.voice.stops, "inactive voice is left alone")
}

func TestNew_OptionalCollaborators(t *testing.T) {
	compose := &fakeCompose{text: "hi"}
	sink := transcript.New()
	ctrl := New(Deps{Compose: compose, Sender: &fakeSender{reply: "yo"}, Sink: sink})

	require.True(t, ctrl.Send(context.Background()))
	assert.Equal(t, 2, sink.Len())
}

// TestSend_UnauthorizedNavigates uses the real client against a server that
// answers 401 with a redirect.
func TestSend_UnauthorizedNavigates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"redirect":"/x"}`))
	}))
	defer server.Close()

	var navigated []string
	c, err := client.New(client.Options{
		BaseURL:   server.URL,
		Navigator: client.NavigatorFunc(func(target string) { navigated = append(navigated, target) }),
	})
	require.NoError(t, err)

	compose := &fakeCompose{text: "hi"}
	controls := &fakeControls{}
	sink := transcript.New()
	ctrl := New(Deps{Compose: compose, Controls: controls, Sender: c, Sink: sink})

	require.True(t, ctrl.Send(context.Background()))

	assert.Equal(t, []string{"/x"}, navigated)
	turns := sink.Turns()
	require.Len(t, turns, 1, "only the user's turn remains")
	assert.Equal(t, "hi", turns[0].Text)
	assert.False(t, sink.HasThinking())
	assert.Equal(t, StateIdle, ctrl.State())
	assert.False(t, controls.locked)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "unknown", State(9).String())
}
