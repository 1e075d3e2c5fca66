// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dom

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/net/html"
)

// Event is passed to listeners when an event is dispatched on a node.
type Event struct {
	Type   string
	Target *html.Node
}

// Document is a parsed page bound to the loop that owns its nodes.
type Document struct {
	root *html.Node
	loop *Loop

	mu        sync.Mutex
	cookie    string
	listeners map[*html.Node][]*Listener
}

// Listener is the handle returned by AddEventListener.
type Listener struct {
	doc   *Document
	node  *html.Node
	event string
	fn    func(Event)
}

// Parse reads an HTML page and binds it to loop.
func Parse(r io.Reader, loop *Loop) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return NewDocument(root, loop), nil
}

// NewDocument binds an already parsed tree to loop.
func NewDocument(root *html.Node, loop *Loop) *Document {
	return &Document{
		root:      root,
		loop:      loop,
		listeners: make(map[*html.Node][]*Listener),
	}
}

// Root returns the document node. Read it only from a loop task.
func (d *Document) Root() *html.Node { return d.root }

// Loop returns the loop that owns the document's nodes.
func (d *Document) Loop() *Loop { return d.loop }

// Cookie returns the document.cookie string.
func (d *Document) Cookie() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cookie
}

// SetCookie replaces the document.cookie string.
func (d *Document) SetCookie(cookie string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cookie = cookie
}

// AddEventListener registers fn for event on node. Listeners run on the
// loop in registration order.
func (d *Document) AddEventListener(node *html.Node, event string, fn func(Event)) *Listener {
	l := &Listener{doc: d, node: node, event: event, fn: fn}

	d.mu.Lock()
	d.listeners[node] = append(d.listeners[node], l)
	d.mu.Unlock()

	return l
}

// Remove unregisters the listener. Removing twice is a no-op.
func (l *Listener) Remove() {
	d := l.doc
	d.mu.Lock()
	defer d.mu.Unlock()

	current := d.listeners[l.node]
	for i, other := range current {
		if other == l {
			current = append(current[:i:i], current[i+1:]...)
			break
		}
	}
	if len(current) == 0 {
		delete(d.listeners, l.node)
	} else {
		d.listeners[l.node] = current
	}
}

// ListenerCount returns the number of registered listeners across all nodes.
func (d *Document) ListenerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, ls := range d.listeners {
		n += len(ls)
	}
	return n
}

// Dispatch queues event on node. The listeners are captured when Dispatch
// is called, so removing one afterwards does not cancel a queued event.
func (d *Document) Dispatch(node *html.Node, event string) error {
	d.mu.Lock()
	var matched []*Listener
	for _, l := range d.listeners[node] {
		if l.event == event {
			matched = append(matched, l)
		}
	}
	d.mu.Unlock()

	ev := Event{Type: event, Target: node}
	return d.loop.Post(func() {
		for _, l := range matched {
			l.fn(ev)
		}
	})
}

// Click dispatches a click event on node.
func (d *Document) Click(node *html.Node) error {
	return d.Dispatch(node, "click")
}

// Render writes the page. Call it from a loop task or after the loop stops.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}
