// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/askme-reactions/auth"
	"github.com/danielhkuo/askme-reactions/middleware"
	"github.com/danielhkuo/askme-reactions/models"
)

var (
	// ErrStatus marks a non-2xx response.
	ErrStatus = errors.New("unexpected response status")
	// ErrMalformed marks a body that is not JSON or lacks count/correct.
	ErrMalformed = errors.New("malformed response")
)

// StatusError is returned for non-2xx responses. errors.Is(err, ErrStatus) holds.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d", ErrStatus, e.StatusCode)
	}
	return fmt.Sprintf("%s: %d: %s", ErrStatus, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// CookieSource exposes the page's document.cookie string.
type CookieSource interface {
	Cookie() string
}

// Client posts votes and correctness marks to the Q&A server.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	cookies CookieSource
	logger  *slog.Logger
}

// NewClient creates a client for the server at baseURL. The CSRF token is
// read from cookies on every request.
func NewClient(baseURL string, httpClient *http.Client, cookies CookieSource, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{baseURL: u, http: httpClient, cookies: cookies, logger: logger}, nil
}

// Like sends POST /{item}_like/ and returns the new vote count.
func (c *Client) Like(ctx context.Context, itemType models.ItemType, itemID string, likeType models.LikeType) (int, error) {
	fields := [][2]string{
		{itemType.IDField(), itemID},
		{models.FieldLikeType, string(likeType)},
	}

	var resp models.LikeResponse
	if err := c.postForm(ctx, itemType.LikePath(), fields, &resp); err != nil {
		return 0, err
	}
	if resp.Count == nil {
		return 0, fmt.Errorf("%w: missing count", ErrMalformed)
	}
	return *resp.Count, nil
}

// MakeCorrect sends POST /make_correct/ and returns the answer's new state.
func (c *Client) MakeCorrect(ctx context.Context, answerID string) (bool, error) {
	fields := [][2]string{
		{models.FieldAnswerID, answerID},
	}

	var resp models.CorrectResponse
	if err := c.postForm(ctx, models.PathMakeCorrect, fields, &resp); err != nil {
		return false, err
	}
	if resp.Correct == nil {
		return false, fmt.Errorf("%w: missing correct", ErrMalformed)
	}
	return *resp.Correct, nil
}

// postForm sends fields as multipart/form-data, in order.
func (c *Client) postForm(ctx context.Context, path string, fields [][2]string, out interface{}) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("failed to encode form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}

	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", c.baseURL.Scheme+"://"+c.baseURL.Host)

	var cookie string
	if c.cookies != nil {
		cookie = c.cookies.Cookie()
	}
	if err := auth.SetCSRFHeader(req.Header, cookie); err != nil {
		// Sent anyway; the server answers 403 and the caller logs it
		c.logger.Warn("sending request without csrf token", "path", path, "error", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("request to %s failed: %w", path, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		})
	}

	if err := middleware.DecodeJSON(resp, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}
