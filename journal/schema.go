// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package journal

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates the journal table.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Column types are limited to what both postgres and sqlite accept;
// timestamps are unix milliseconds.
const schema = `
CREATE TABLE IF NOT EXISTS reaction_log (
    request_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL CHECK (kind IN ('reaction', 'correctness')),
    item_type TEXT NOT NULL,
    item_id TEXT NOT NULL,
    like_type TEXT NOT NULL DEFAULT '',
    result TEXT NOT NULL DEFAULT '',
    error_message TEXT NOT NULL DEFAULT '',
    duration_ms BIGINT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reaction_log_item ON reaction_log(item_type, item_id);
CREATE INDEX IF NOT EXISTS idx_reaction_log_created_at ON reaction_log(created_at);
`
