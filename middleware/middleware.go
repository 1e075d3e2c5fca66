// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport logs every outgoing request and its completion
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewLoggingTransport wraps base (http.DefaultTransport when nil)
func NewLoggingTransport(base http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingTransport{Base: base, Logger: logger}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	t.Logger.Debug("request started",
		"method", req.Method,
		"path", req.URL.Path,
		"host", req.URL.Host,
	)

	resp, err := t.Base.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		// The caller decides whether this is worth an error log
		t.Logger.Debug("request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	t.Logger.Info("request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)
	return resp, nil
}

// DecodeJSON parses a response body into v and closes it.
// The Content-Type header is not checked, only the body.
func DecodeJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}
