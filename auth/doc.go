// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles the cookie and CSRF conventions of the Q&A server.

# Cookies

GetCookie parses a document.cookie style string:

	token, ok := auth.GetCookie("a=1; csrftoken=abc%20def", "csrftoken")
	// token == "abc def", ok == true

Entries are split on ';' and trimmed; the first entry named exactly
name wins and its value is percent-decoded. An empty string or a
missing name returns ok == false.

CookieString goes the other way and drops HttpOnly cookies, since the
page script can never see those. Cookies read back from a jar have lost
the flag, so their names are passed in separately.

# CSRF

Mutating requests echo the csrftoken cookie in the X-CSRFToken header:

	if err := auth.SetCSRFHeader(req.Header, doc.Cookie()); err != nil {
		// ErrNoCSRFToken
	}

# Request IDs

NewRequestID returns a UUID used to correlate log lines and journal rows.
*/
package auth
