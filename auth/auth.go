// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/askme-reactions/models"
)

var (
	ErrNoCSRFToken = errors.New("csrf token cookie not set")
)

// GetCookie returns the decoded value of the named cookie from a
// document.cookie style string ("a=1; b=2"). The first match wins.
func GetCookie(cookieString, name string) (string, bool) {
	if cookieString == "" {
		return "", false
	}

	prefix := name + "="
	for _, cookie := range strings.Split(cookieString, ";") {
		cookie = strings.TrimSpace(cookie)
		if !strings.HasPrefix(cookie, prefix) {
			continue
		}
		raw := cookie[len(prefix):]
		value, err := url.PathUnescape(raw)
		if err != nil {
			// Malformed escapes are kept as-is rather than dropping the cookie
			return raw, true
		}
		return value, true
	}
	return "", false
}

// CSRFToken reads the csrftoken cookie from a cookie string
func CSRFToken(cookieString string) (string, error) {
	token, ok := GetCookie(cookieString, models.CookieCSRF)
	if !ok || token == "" {
		return "", ErrNoCSRFToken
	}
	return token, nil
}

// SetCSRFHeader copies the csrftoken cookie into the X-CSRFToken header
func SetCSRFHeader(h http.Header, cookieString string) error {
	token, err := CSRFToken(cookieString)
	if err != nil {
		return err
	}
	h.Set(models.HeaderCSRF, token)
	return nil
}

// CookieString renders cookies the way document.cookie exposes them.
// Cookies flagged HttpOnly are left out, as are names in httpOnly. Jar
// cookies carry only name and value, so callers reading from a jar must
// pass the names they saw set as HttpOnly.
func CookieString(cookies []*http.Cookie, httpOnly map[string]bool) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if c.HttpOnly || httpOnly[c.Name] {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// NewRequestID returns a random id used to correlate logs and journal rows
func NewRequestID() string {
	return uuid.NewString()
}
