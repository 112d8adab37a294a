// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// DefaultTranscribeURL is the OpenAI transcription endpoint.
const DefaultTranscribeURL = "https://api.openai.com/v1/audio/transcriptions"

// maxTranscriptSize bounds the transcription response.
const maxTranscriptSize = 1 << 20

// TranscribeOptions configures a transcription request.
type TranscribeOptions struct {
	Endpoint string // Full URL; empty uses DefaultTranscribeURL
	APIKey   string
	Model    string // Sent only with an API key; defaults to whisper-1
	Language string // Optional ISO 639-1 code, e.g. "en"
}

type whisperResponse struct {
	Text string `json:"text"`
}

// TranscribeFile sends an audio file to a Whisper-compatible endpoint and
// returns the transcript.
func TranscribeFile(ctx context.Context, hc *http.Client, filePath string, opts TranscribeOptions) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}

	if opts.APIKey != "" {
		model := opts.Model
		if model == "" {
			model = "whisper-1"
		}
		_ = mw.WriteField("model", model)
	}
	_ = mw.WriteField("response_format", "json")
	if opts.Language != "" {
		_ = mw.WriteField("language", opts.Language)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultTranscribeURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+opts.APIKey)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTranscriptSize))
	if err != nil {
		return "", fmt.Errorf("read transcription: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription API error %d: %s", resp.StatusCode, string(data))
	}

	var result whisperResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode transcription: %w", err)
	}
	return result.Text, nil
}
