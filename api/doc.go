// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package api is the HTTP client for the Q&A server's vote and
// correctness endpoints. Bodies are multipart form data and every request
// echoes the csrftoken cookie in X-CSRFToken.
package api
