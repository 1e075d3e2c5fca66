// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package journal keeps a local record of widget submissions.

# Opening

	j, err := journal.Open(ctx, "sqlite", "file:reactions.db")
	j, err := journal.Open(ctx, "postgres", "postgres://...")

Open pings the database and calls CreateSchema, which is safe to call
multiple times - it uses IF NOT EXISTS for the table and indexes.

# Table

	reaction_log
	  request_id     TEXT PRIMARY KEY
	  kind           'reaction' | 'correctness'
	  item_type      question | answer
	  item_id, like_type, result, error_message
	  duration_ms    BIGINT
	  created_at     BIGINT (unix ms)

# Wiring

	opts := widget.Options{OnOutcome: j.Observer(ctx, logger)}

Record errors are logged by the observer; the page is never affected.
*/
package journal
