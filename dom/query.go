// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of attribute key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Dataset reads a data-* attribute, Dataset(n, "id") reads data-id.
func Dataset(n *html.Node, key string) (string, bool) {
	return Attr(n, "data-"+key)
}

// HasClass reports whether class is one of n's space separated classes.
func HasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	classes, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// ElementChildren returns the element children of n in document order,
// skipping text and comment nodes.
func ElementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

// walk visits n's descendants in document order until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !visit(c) {
			return false
		}
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// ElementsByClass returns every element under the document root with class.
func (d *Document) ElementsByClass(class string) []*html.Node {
	return ElementsByClass(d.root, class)
}

func ElementsByClass(root *html.Node, class string) []*html.Node {
	var found []*html.Node
	walk(root, func(n *html.Node) bool {
		if HasClass(n, class) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// FindByClass returns the first descendant of n with class, or nil.
func FindByClass(n *html.Node, class string) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if HasClass(c, class) {
			found = c
			return false
		}
		return true
	})
	return found
}

// QueryDataID returns the first element whose data-id equals id, like
// querySelector(`[data-id="id"]`).
func (d *Document) QueryDataID(id string) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if v, ok := Dataset(n, "id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// SetText replaces all children of n with a single text node.
func SetText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
