// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dom

import (
	"bytes"
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<div class="card question">
  <div class="question-reputation d-flex">
    <button class="btn like">+</button>
    <span class="counter" data-id="42">3</span>
    <button class="btn dislike">-</button>
  </div>
</div>
<div class="answer-reputation">
  <button>+</button><span data-id="7">0</span><button>-</button>
</div>
<!-- comment -->
</body></html>`

func mustParse(t *testing.T, loop *Loop) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(samplePage), loop)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestQueries(t *testing.T) {
	doc := mustParse(t, NewLoop(0))

	groups := doc.ElementsByClass("question-reputation")
	if len(groups) != 1 {
		t.Fatalf("expected 1 question group, got %d", len(groups))
	}

	children := ElementChildren(groups[0])
	if len(children) != 3 {
		t.Fatalf("expected 3 element children, got %d", len(children))
	}
	if children[0].Data != "button" || children[2].Data != "button" {
		t.Errorf("expected buttons around the counter, got %s/%s", children[0].Data, children[2].Data)
	}

	id, ok := Dataset(children[1], "id")
	if !ok || id != "42" {
		t.Errorf("Dataset(counter, id) = %q, %v", id, ok)
	}
	if !HasClass(groups[0], "d-flex") {
		t.Error("HasClass should match any class in the list")
	}
	if HasClass(groups[0], "d") {
		t.Error("HasClass should not match class prefixes")
	}

	if n := doc.QueryDataID("7"); n == nil || Text(n) != "0" {
		t.Errorf("QueryDataID(7) = %v", n)
	}
	if n := doc.QueryDataID("99"); n != nil {
		t.Errorf("QueryDataID(99) should be nil")
	}
	if n := FindByClass(doc.Root(), "counter"); n == nil || Text(n) != "3" {
		t.Errorf("FindByClass(counter) = %v", n)
	}
}

func TestSetText(t *testing.T) {
	doc := mustParse(t, NewLoop(0))
	counter := doc.QueryDataID("42")

	SetText(counter, "7")

	if got := Text(counter); got != "7" {
		t.Errorf("Text() = %q, want %q", got, "7")
	}
	if counter.FirstChild == nil || counter.FirstChild != counter.LastChild {
		t.Error("SetText should leave exactly one child")
	}
	if counter.FirstChild.Type != html.TextNode {
		t.Error("SetText should insert a text node")
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), `<span class="counter" data-id="42">7</span>`) {
		t.Errorf("rendered page missing patched counter:\n%s", buf.String())
	}
}

func TestListeners(t *testing.T) {
	loop, stop := startLoop(t)
	defer stop()

	doc := mustParse(t, loop)
	button := ElementChildren(doc.ElementsByClass("question-reputation")[0])[0]

	var calls []string
	first := doc.AddEventListener(button, "click", func(ev Event) {
		if ev.Target != button || ev.Type != "click" {
			t.Errorf("unexpected event %+v", ev)
		}
		calls = append(calls, "first")
	})
	doc.AddEventListener(button, "click", func(Event) { calls = append(calls, "second") })
	doc.AddEventListener(button, "focus", func(Event) { calls = append(calls, "focus") })

	if n := doc.ListenerCount(); n != 3 {
		t.Fatalf("ListenerCount() = %d, want 3", n)
	}

	doc.Click(button)
	first.Remove()
	first.Remove()
	doc.Click(button)

	var got []string
	loop.Do(context.Background(), func() { got = append(got, calls...) })

	want := []string{"first", "second", "second"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if n := doc.ListenerCount(); n != 2 {
		t.Errorf("ListenerCount() after Remove = %d, want 2", n)
	}
}

func TestLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "secret", Path: "/", HttpOnly: true})
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	doc, err := Load(context.Background(), client, server.URL+"/question/42", NewLoop(0))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := doc.Cookie(); got != "csrftoken=tok" {
		t.Errorf("Cookie() = %q, want %q", got, "csrftoken=tok")
	}
	if doc.QueryDataID("42") == nil {
		t.Error("loaded document missing counter")
	}
}

func TestLoad_RedirectHidesHttpOnly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "secret", Path: "/", HttpOnly: true})
		http.Redirect(w, r, "/page", http.StatusFound)
	})
	mux.HandleFunc("GET /page", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok", Path: "/"})
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(samplePage))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	doc, err := Load(context.Background(), client, server.URL+"/", NewLoop(0))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := doc.Cookie(); got != "csrftoken=tok" {
		t.Errorf("Cookie() = %q, want %q", got, "csrftoken=tok")
	}
	if client.Jar != jar {
		t.Error("Load() replaced the caller's jar")
	}
	if n := len(jar.Cookies(mustURL(t, server.URL))); n != 2 {
		t.Errorf("jar holds %d cookies, want 2", n)
	}
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestLoad_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := Load(context.Background(), server.Client(), server.URL, NewLoop(0))
	if err == nil {
		t.Fatal("expected error for 404 page")
	}
}
