// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/danielhkuo/askme-reactions/models"
)

// TestCSRFToken is the token the fake server hands out and expects back
const TestCSRFToken = "test-csrf-token"

// SamplePage is a question page with one question and two answers
const SamplePage = `<!DOCTYPE html>
<html lang="ru">
<head><title>askme</title></head>
<body>
<div class="card question">
  <h1>How do I center a div?</h1>
  <div class="question-reputation d-flex align-items-center">
    <button class="btn btn-outline-success btn-sm" type="button">&#9650;</button>
    <span class="mx-2" data-id="42">3</span>
    <button class="btn btn-outline-danger btn-sm" type="button">&#9660;</button>
  </div>
</div>
<div class="card answer">
  <p>Use flexbox.</p>
  <div class="answer-reputation d-flex">
    <button class="btn btn-sm" type="button">&#9650;</button>
    <span class="mx-2" data-id="5">10</span>
    <button class="btn btn-sm" type="button">&#9660;</button>
  </div>
  <div class="correct-answer form-check" data-id="5">
    <button class="btn btn-sm btn-outline-primary" type="button">&#10003;</button>
    <label class="form-check-label">Отметить как правильный</label>
  </div>
</div>
<div class="card answer">
  <p>Use a table.</p>
  <div class="answer-reputation d-flex">
    <button class="btn btn-sm" type="button">&#9650;</button>
    <span class="mx-2" data-id="7">-1</span>
    <button class="btn btn-sm" type="button">&#9660;</button>
  </div>
  <div class="correct-answer form-check" data-id="7">
    <button class="btn btn-sm btn-outline-primary" type="button">&#10003;</button>
    <label class="form-check-label">Правильный ответ</label>
  </div>
</div>
</body>
</html>`

// RecordedRequest is a request the fake server received
type RecordedRequest struct {
	Method string
	Path   string
	Form   url.Values
	Header http.Header
}

// FakeServer serves SamplePage and answers the like and make_correct
// endpoints with configured values. It records every POST it receives.
type FakeServer struct {
	*httptest.Server

	mu        sync.Mutex
	page      string
	requests  []RecordedRequest
	counts    map[string]int
	correct   map[string]bool
	overrides map[string]http.HandlerFunc
}

// NewFakeServer starts a server that is closed when the test ends
func NewFakeServer(t *testing.T) *FakeServer {
	t.Helper()

	s := &FakeServer{
		page:      SamplePage,
		counts:    make(map[string]int),
		correct:   make(map[string]bool),
		overrides: make(map[string]http.HandlerFunc),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.servePage)
	mux.HandleFunc("POST /question_like/", s.record(s.like(models.ItemQuestion)))
	mux.HandleFunc("POST /answer_like/", s.record(s.like(models.ItemAnswer)))
	mux.HandleFunc("POST /make_correct/", s.record(s.makeCorrect))

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// SetPage replaces the served page
func (s *FakeServer) SetPage(page string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

// SetCount sets the count returned for votes on an item
func (s *FakeServer) SetCount(itemType models.ItemType, itemID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[string(itemType)+":"+itemID] = count
}

// SetCorrect sets the state returned by make_correct for an answer
func (s *FakeServer) SetCorrect(answerID string, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.correct[answerID] = correct
}

// Handle replaces the handler for a POST path after the request is recorded
func (s *FakeServer) Handle(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[path] = h
}

// Requests returns a copy of the recorded POST requests
func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

func (s *FakeServer) servePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: models.CookieCSRF, Value: TestCSRFToken, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: models.CookieSession, Value: "test-session", Path: "/", HttpOnly: true})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (s *FakeServer) record(next http.HandlerFunc) http.HandlerFunc {
	return withLogging(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
			writeError(w, http.StatusBadRequest, "invalid form")
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Form:   r.PostForm,
			Header: r.Header.Clone(),
		})
		override := s.overrides[r.URL.Path]
		s.mu.Unlock()

		if override != nil {
			override(w, r)
			return
		}

		if r.Header.Get(models.HeaderCSRF) != TestCSRFToken {
			writeError(w, http.StatusForbidden, "CSRF token missing or incorrect")
			return
		}
		next(w, r)
	})
}

func (s *FakeServer) like(itemType models.ItemType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := r.PostForm.Get(itemType.IDField())
		if itemID == "" {
			writeError(w, http.StatusBadRequest, itemType.IDField()+" is required")
			return
		}
		if _, err := models.ParseLikeType(r.PostForm.Get(models.FieldLikeType)); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		s.mu.Lock()
		count := s.counts[string(itemType)+":"+itemID]
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, models.LikeResponse{Count: &count})
	}
}

func (s *FakeServer) makeCorrect(w http.ResponseWriter, r *http.Request) {
	answerID := r.PostForm.Get(models.FieldAnswerID)
	if answerID == "" {
		writeError(w, http.StatusBadRequest, "answer_id is required")
		return
	}

	s.mu.Lock()
	correct, ok := s.correct[answerID]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("answer %s not found", answerID))
		return
	}

	writeJSON(w, http.StatusOK, models.CorrectResponse{Correct: &correct})
}

// PageWith returns a minimal page holding the given body markup
func PageWith(body ...string) string {
	return "<!DOCTYPE html><html><body>" + strings.Join(body, "\n") + "</body></html>"
}

// AssertForm checks that a recorded request carried exactly the given fields
func AssertForm(t *testing.T, req RecordedRequest, want map[string]string) {
	t.Helper()
	if len(req.Form) != len(want) {
		t.Errorf("Expected %d form fields, got %d: %v", len(want), len(req.Form), req.Form)
	}
	for k, v := range want {
		if got := req.Form.Get(k); got != v {
			t.Errorf("Expected form field %s=%q, got %q", k, v, got)
		}
	}
}
