// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type recordingNavigator struct {
	targets []string
}

func (r *recordingNavigator) Navigate(target string) {
	r.targets = append(r.targets, target)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, subject string) (*Client, *recordingNavigator) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	nav := &recordingNavigator{}
	c, err := New(Options{
		BaseURL:       server.URL + "/",
		Subject:       subject,
		SessionCookie: "abc123",
		Navigator:     nav,
	})
	require.NoError(t, err)
	return c, nav
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

// =============================================================================
// SEND TEXT
// =============================================================================

func TestSendText_Success(t *testing.T) {
	c, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		cookie, err := r.Cookie(SessionCookieName)
		require.NoError(t, err)
		assert.Equal(t, "abc123", cookie.Value)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "what is 2+2", body["message"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reply":"4"}`))
	}, "math")

	reply, err := c.SendText(context.Background(), "what is 2+2")
	require.NoError(t, err)
	assert.Equal(t, "4", reply.Reply)
	assert.Empty(t, nav.targets)
}

func TestSendText_RefererFollowsSubject(t *testing.T) {
	var referer atomic.Value
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		referer.Store(r.Header.Get("Referer"))
		w.Write([]byte(`{"reply":"ok"}`))
	}, "math")

	_, err := c.SendText(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, c.BaseURL()+"/", referer.Load())

	c.SetSubject("history")
	assert.Equal(t, "history", c.Subject())
	_, err = c.SendText(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, c.BaseURL()+"/history", referer.Load())
}

func TestSendText_UnauthorizedWithRedirect(t *testing.T) {
	c, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"reply":"Please sign in.","redirect":"/signin"}`))
	}, "math")

	_, err := c.SendText(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	var uerr *UnauthorizedError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "/signin", uerr.Redirect)
	assert.Equal(t, []string{"/signin"}, nav.targets)
}

func TestSendText_UnauthorizedWithoutBody(t *testing.T) {
	c, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`not json`))
	}, "math")

	_, err := c.SendText(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, []string{LoginPath}, nav.targets)
}

func TestSendText_UnauthorizedTruncatedBody(t *testing.T) {
	c, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"red`))
	}, "math")

	_, err := c.SendText(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, []string{LoginPath}, nav.targets)
}

func TestSendText_ServerError(t *testing.T) {
	c, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "math")

	_, err := c.SendText(context.Background(), "hi")
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 500, serr.Code)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Empty(t, nav.targets)
}

func TestSendText_MalformedJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reply":`))
	}, "math")

	_, err := c.SendText(context.Background(), "hi")
	assert.Error(t, err)
}

func TestSendText_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := New(Options{BaseURL: url})
	require.NoError(t, err)

	_, err = c.SendText(context.Background(), "hi")
	assert.Error(t, err)
}

// =============================================================================
// SEND IMAGE
// =============================================================================

func TestSendImage_MultipartFields(t *testing.T) {
	tests := []struct {
		name       string
		prompt     string
		wantPrompt bool
	}{
		{"with prompt", "solve this", true},
		{"without prompt", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/upload-image", r.URL.Path)
				require.NoError(t, r.ParseMultipartForm(1<<20))

				file, header, err := r.FormFile("image")
				require.NoError(t, err)
				defer file.Close()
				data, _ := io.ReadAll(file)
				assert.Equal(t, pngHeader, data)
				assert.Equal(t, "page.png", header.Filename)
				assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

				_, present := r.MultipartForm.Value["prompt"]
				assert.Equal(t, tt.wantPrompt, present)
				if tt.wantPrompt {
					assert.Equal(t, tt.prompt, r.FormValue("prompt"))
				}
				w.Write([]byte(`{"reply":"x = 3"}`))
			}, "math")

			path := writeFile(t, "page.png", pngHeader)
			reply, err := c.SendImage(context.Background(), path, tt.prompt)
			require.NoError(t, err)
			assert.Equal(t, "x = 3", reply.Reply)
		})
	}
}

func TestSendImage_RejectsNonImage(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, "math")

	path := writeFile(t, "notes.txt", []byte("just some text"))
	_, err := c.SendImage(context.Background(), path, "")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = c.SendImage(context.Background(), writeFile(t, "empty.png", nil), "")
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = c.SendImage(context.Background(), filepath.Join(t.TempDir(), "missing.png"), "")
	assert.Error(t, err)

	assert.Equal(t, int32(0), hits.Load(), "no request for rejected files")
	assert.False(t, IsImageFile(path))
}

// =============================================================================
// LOGOUT AND HELPERS
// =============================================================================

func TestLogout(t *testing.T) {
	var called atomic.Bool
	c, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/logout", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		called.Store(true)
		w.Write([]byte(`{"ok":true}`))
	}, "math")

	require.NoError(t, c.Logout(context.Background()))
	assert.True(t, called.Load())
	assert.Empty(t, nav.targets, "logout never navigates by itself")
}

func TestLogout_StatusError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, "math")

	var serr *StatusError
	require.True(t, errors.As(c.Logout(context.Background()), &serr))
	assert.Equal(t, http.StatusBadGateway, serr.Code)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "ftp://example.com"})
	assert.Error(t, err)
	_, err = New(Options{BaseURL: "://bad"})
	assert.Error(t, err)
}

func TestResolveURLAndSubjectPath(t *testing.T) {
	c, err := New(Options{BaseURL: "https://tutor.example.com"})
	require.NoError(t, err)

	assert.Equal(t, "https://tutor.example.com/login", c.ResolveURL("/login"))
	assert.Equal(t, "https://other.example.com/x", c.ResolveURL("https://other.example.com/x"))

	assert.Equal(t, "/", SubjectPath("math"))
	assert.Equal(t, "/", SubjectPath(""))
	assert.Equal(t, "/science", SubjectPath("science"))
}
