// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client talks to the Harold tutor backend.
//
// Three endpoints are used, all relative to the configured base URL:
//
//	POST /chat          JSON {"message": ...}          -> {"reply": ...}
//	POST /upload-image  multipart image [+ prompt]     -> {"reply": ...}
//	POST /auth/logout   empty body, response ignored
//
// The backend answers 401 with {"redirect": "/login"} when the session has
// expired. The client then asks its Navigator to leave the chat surface and
// returns an *UnauthorizedError. Requests are never retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

// =============================================================================
// CONSTANTS AND ERRORS
// =============================================================================

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the largest response body accepted.
	MaxResponseSize = 10 * 1024 * 1024

	// MaxImageSize is the largest image accepted for upload.
	MaxImageSize = 20 * 1024 * 1024

	// LoginPath is the navigation target when a 401 carries no redirect.
	LoginPath = "/login"

	// SessionCookieName is the backend's session cookie.
	SessionCookieName = "session"
)

var (
	// ErrUnauthorized indicates the session is missing or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotImage indicates the selected file is not an image.
	ErrNotImage = errors.New("file is not an image")

	// ErrEmptyFile indicates the selected file has no content.
	ErrEmptyFile = errors.New("file is empty")
)

// UnauthorizedError is returned for a 401 response after navigation was requested.
type UnauthorizedError struct {
	Redirect string
}

// Error implements the error interface.
func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized (redirecting to %s)", e.Redirect)
}

// Is lets errors.Is match ErrUnauthorized.
func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Code)
}

// =============================================================================
// TYPES
// =============================================================================

// Reply is the backend's JSON answer.
type Reply struct {
	Reply    string `json:"reply"`
	Redirect string `json:"redirect,omitempty"`
}

// chatRequest is the /chat body.
type chatRequest struct {
	Message string `json:"message"`
}

// Navigator leaves the chat surface for another backend page.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(target string) { f(target) }

// Options configures a Client.
type Options struct {
	BaseURL       string
	Subject       string
	SessionCookie string
	Timeout       time.Duration
	Navigator     Navigator
	// HTTPClient replaces the default client; its Jar is left untouched.
	HTTPClient *http.Client
}

// Client is a Harold backend client. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     zerolog.Logger

	mu      sync.RWMutex
	subject string
	nav     Navigator
}

// New creates a client for the backend at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		httpClient = &http.Client{Jar: jar, Timeout: timeout}
	}

	if opts.SessionCookie != "" && httpClient.Jar != nil {
		httpClient.Jar.SetCookies(base, []*http.Cookie{{
			Name:  SessionCookieName,
			Value: opts.SessionCookie,
			Path:  "/",
		}})
	}

	nav := opts.Navigator
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		log:     log.With().Str("component", "client").Logger(),
		subject: opts.Subject,
		nav:     nav,
	}, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SetSubject changes the tutoring subject used for later requests.
func (c *Client) SetSubject(subject string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subject = subject
}

// Subject returns the current tutoring subject.
func (c *Client) Subject() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subject
}

// SetNavigator replaces the navigator used on 401 responses.
func (c *Client) SetNavigator(nav Navigator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav = nav
}

// ResolveURL turns a backend path such as "/login" into an absolute URL.
func (c *Client) ResolveURL(target string) string {
	ref, err := url.Parse(target)
	if err != nil {
		return target
	}
	return c.baseURL.ResolveReference(ref).String()
}

// SubjectPath returns the page path the backend associates with subject.
func SubjectPath(subject string) string {
	switch subject {
	case "", "math":
		return "/"
	default:
		return "/" + subject
	}
}

// =============================================================================
// REQUESTS
// =============================================================================

// SendText posts a chat message.
func (c *Client) SendText(ctx context.Context, message string) (*Reply, error) {
	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, "/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// SendImage uploads the image at path with an optional prompt.
// Files that are not images are rejected before any request is made.
func (c *Client) SendImage(ctx context.Context, path, prompt string) (*Reply, error) {
	data, mime, err := readImage(path)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(path)))
	h.Set("Content-Type", mime)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if prompt != "" {
		if err := mw.WriteField("prompt", prompt); err != nil {
			return nil, fmt.Errorf("write prompt field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := c.newRequest(ctx, "/upload-image", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

// Logout ends the backend session. The response body is ignored.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, "/auth/logout", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))

	c.log.Info().Int("status", resp.StatusCode).Msg("logout")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.String()+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", c.baseURL.String()+SubjectPath(c.Subject()))
	return req, nil
}

func (c *Client) do(req *http.Request) (*Reply, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", req.URL.Path).Msg("request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("response")

	body, err := readResponse(resp)
	if err != nil {
		if resp.StatusCode != http.StatusUnauthorized {
			return nil, err
		}
		// An unreadable 401 body still redirects, to the login page.
		c.log.Warn().Err(err).Msg("unreadable 401 body")
		body = nil
	}
	return c.handleJSONResponse(resp.StatusCode, body)
}

// handleJSONResponse maps a response to a Reply or an error.
// A 401 triggers navigation before the error is returned.
func (c *Client) handleJSONResponse(statusCode int, body []byte) (*Reply, error) {
	if statusCode == http.StatusUnauthorized {
		var payload Reply
		if err := json.Unmarshal(body, &payload); err != nil {
			payload = Reply{}
		}
		target := payload.Redirect
		if target == "" {
			target = LoginPath
		}

		c.log.Info().Str("redirect", target).Msg("session expired")
		c.mu.RLock()
		nav := c.nav
		c.mu.RUnlock()
		nav.Navigate(target)

		return nil, &UnauthorizedError{Redirect: target}
	}

	if statusCode < 200 || statusCode > 299 {
		return nil, &StatusError{Code: statusCode}
	}

	var reply Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &reply, nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}

	return body, nil
}

// readImage loads an image file and returns its bytes and detected MIME type.
func readImage(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}
	if len(data) > MaxImageSize {
		return nil, "", fmt.Errorf("image exceeds max size of %d bytes", MaxImageSize)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, "", fmt.Errorf("%w: %s", ErrNotImage, mime.String())
	}
	return data, mime.String(), nil
}

// IsImageFile reports whether path names a readable image.
func IsImageFile(path string) bool {
	_, _, err := readImage(path)
	return err == nil
}
