// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/askme-reactions/models"
)

func newResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDecodeJSON(t *testing.T) {
	testCases := []struct {
		name      string
		body      string
		wantErr   bool
		wantCount int
	}{
		{"valid", `{"count": 7}`, false, 7},
		{"extra fields", `{"count": -2, "status": "ok"}`, false, -2},
		{"html error page", `<html><body>Server Error</body></html>`, true, 0},
		{"empty body", ``, true, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out models.LikeResponse
			err := DecodeJSON(newResponse(tc.body), &out)

			if tc.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.Count == nil || *out.Count != tc.wantCount {
				t.Errorf("Expected count %d, got %v", tc.wantCount, out.Count)
			}
		})
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestLoggingTransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	transport := NewLoggingTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("{}")), Request: r}, nil
	}), logger)

	req := httptest.NewRequest("POST", "http://askme.test/answer_like/", nil)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	resp.Body.Close()

	out := buf.String()
	if !strings.Contains(out, "request started") || !strings.Contains(out, "request completed") {
		t.Errorf("expected start and completion logs, got:\n%s", out)
	}
	if !strings.Contains(out, "path=/answer_like/") || !strings.Contains(out, "status=200") {
		t.Errorf("expected path and status fields, got:\n%s", out)
	}
}

func TestLoggingTransport_ErrorNotLoggedAsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	boom := errors.New("connection refused")
	transport := NewLoggingTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	}), logger)

	_, err := transport.RoundTrip(httptest.NewRequest("POST", "http://askme.test/make_correct/", nil))
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error to pass through, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no info-level output for a failed request, got:\n%s", buf.String())
	}
}
