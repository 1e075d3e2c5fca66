// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the askme-reactions command.

askme-reactions loads a rendered askme Q&A page, binds the like/dislike and
"mark as correct" widgets the way the page script does, clicks them, and
patches the counters and labels from the server's JSON replies.

# Running

The base URL comes from a flag or the environment:

	ASKME_BASE_URL=http://localhost:8000 go run . question:42:like

Or with flags:

	go run . -u http://localhost:8000 -page /question/42 -session abc123 \
		question:42:like answer:5:dislike correct:5

Each touched widget is printed as "question 42: 7" or
"correct 5: Правильный ответ". Use -o to save the patched page.

# Configuration

  - ASKME_BASE_URL (-u): server base URL (required)
  - ASKME_PAGE (-page): page path (default: /)
  - ASKME_SESSION (-session): session cookie value
  - ASKME_TIMEOUT (-timeout): HTTP timeout (default: 10s)
  - DATABASE_TYPE (-t), DATABASE_URL (-d): optional outcome journal

# Architecture

  - dom: document model, event loop, page loading
  - widget: reaction widget controller
  - api: HTTP client for the like and make_correct endpoints
  - auth: cookie parsing and CSRF header
  - middleware: logging transport, JSON helpers
  - models: item types, actions, responses, outcomes
  - journal: outcome storage (sqlite or postgres)
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
