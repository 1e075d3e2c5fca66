// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dom is a small headless page model: an HTML tree parsed with
golang.org/x/net/html, a cookie string, click listeners, and a Loop that
stands in for the browser's UI thread.

# Loop

Every read or write of document nodes happens inside a loop task:

	loop := dom.NewLoop(64)
	go loop.Run(ctx)

	loop.Post(func() { dom.SetText(counter, "7") })     // fire and forget
	loop.Do(ctx, func() { text = dom.Text(counter) })  // wait

Tasks run to completion one at a time. Work that blocks (network calls)
must run on its own goroutine and Post its result back.

# Events

	l := doc.AddEventListener(button, "click", func(ev dom.Event) { ... })
	doc.Click(button) // queued on the loop
	l.Remove()

# Queries

  - ElementsByClass, FindByClass, ElementChildren
  - Attr, Dataset (data-* attributes), HasClass
  - QueryDataID: first element with a matching data-id
  - Text, SetText

# Loading

Load fetches a page with an http.Client and copies the jar's visible
cookies into the document cookie string.
*/
package dom
