// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package widget binds the vote and "mark as correct" widgets of a Q&A page
to the server.

# Markup

Reaction groups carry class question-reputation or answer-reputation and
exactly three element children:

	<div class="question-reputation">
	  <button>▲</button>           increase
	  <span data-id="42">3</span>  counter
	  <button>▼</button>           decrease
	</div>

Correctness groups carry class correct-answer and a data-id; the first
element child is the button and the label has class form-check-label.

# Lifecycle

	ctrl, err := widget.Initialize(ctx, doc, client, widget.Options{})
	defer ctrl.Close()

Initialize builds ReactionItem and CorrectnessItem view models and binds
one click listener per control. Close removes them; Initialize can be
called again on the same document.

# Submissions

A click runs SubmitReaction or SubmitCorrectness on a new goroutine. The
DOM changes only after a successful response; failures are logged once
and leave the page as it was. Nothing is retried, de-duplicated or
cancelled, so with several requests in flight the counter ends up showing
whichever response arrived last.
*/
package widget
