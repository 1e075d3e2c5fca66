// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dom

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/danielhkuo/askme-reactions/auth"
)

// Load fetches pageURL and parses it. The document cookie string is taken
// from the client's jar for pageURL, leaving out cookies any response on
// the way (redirects included) marked HttpOnly and any names listed in
// httpOnly.
func Load(ctx context.Context, client *http.Client, pageURL string, loop *Loop, httpOnly ...string) (*Document, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page url: %w", err)
	}

	hidden := &httpOnlyJar{names: make(map[string]bool, len(httpOnly))}
	for _, name := range httpOnly {
		hidden.names[name] = true
	}

	fetch := client
	if client.Jar != nil {
		hidden.CookieJar = client.Jar
		c := *client
		c.Jar = hidden
		fetch = &c
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := fetch.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch page: %s", resp.Status)
	}

	doc, err := Parse(resp.Body, loop)
	if err != nil {
		return nil, err
	}

	if client.Jar != nil {
		doc.SetCookie(auth.CookieString(client.Jar.Cookies(resp.Request.URL), hidden.snapshot()))
	}

	return doc, nil
}

// httpOnlyJar remembers the names of HttpOnly cookies set through it,
// since the wrapped jar hands cookies back without their attributes.
type httpOnlyJar struct {
	http.CookieJar

	mu    sync.Mutex
	names map[string]bool
}

func (j *httpOnlyJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	for _, c := range cookies {
		if c.HttpOnly {
			j.names[c.Name] = true
		}
	}
	j.mu.Unlock()

	j.CookieJar.SetCookies(u, cookies)
}

func (j *httpOnlyJar) snapshot() map[string]bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	names := make(map[string]bool, len(j.names))
	for name := range j.names {
		names[name] = true
	}
	return names
}
