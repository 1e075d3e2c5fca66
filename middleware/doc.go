// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides the client's logging transport and JSON decoding.

# Client Logging

Wrap the client transport to log outgoing requests:

	client := &http.Client{
		Transport: middleware.NewLoggingTransport(nil, logger),
	}

Logs request start at debug level and completion (status, duration_ms)
at info level. Transport failures are logged at debug level only; the
caller owns the error log.

# JSON Decoding

Decode JSON response bodies:

	var out models.LikeResponse
	if err := middleware.DecodeJSON(resp, &out); err != nil {
		return err
	}
*/
package middleware
