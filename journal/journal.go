// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/askme-reactions/models"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Journal stores submission outcomes
type Journal struct {
	db     *sql.DB
	dbType string
}

// Open connects to the journal database and creates the schema
func Open(ctx context.Context, dbType, dbURL string) (*Journal, error) {
	switch dbType {
	case TypeSQLite, TypePostgres:
	default:
		return nil, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", dbType)
	}

	db, err := sql.Open(dbType, dbURL)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if dbType == TypeSQLite {
		// One writer at a time avoids SQLITE_BUSY from concurrent clicks
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db, dbType: dbType}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres
func (j *Journal) rebind(query string) string {
	if j.dbType != TypePostgres {
		return query
	}

	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Record stores one outcome
func (j *Journal) Record(ctx context.Context, o models.Outcome) error {
	_, err := j.db.ExecContext(ctx, j.rebind(`
		INSERT INTO reaction_log (request_id, kind, item_type, item_id, like_type, result, error_message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), o.RequestID, o.Kind, string(o.ItemType), o.ItemID, string(o.LikeType),
		o.Result, o.Error, o.Duration.Milliseconds(), o.At.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record outcome %s: %w", o.RequestID, err)
	}
	return nil
}

// Recent returns up to limit outcomes, newest first
func (j *Journal) Recent(ctx context.Context, limit int) ([]models.Outcome, error) {
	rows, err := j.db.QueryContext(ctx, j.rebind(`
		SELECT request_id, kind, item_type, item_id, like_type, result, error_message, duration_ms, created_at
		FROM reaction_log
		ORDER BY created_at DESC, request_id
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var outcomes []models.Outcome
	for rows.Next() {
		var (
			o                       models.Outcome
			itemType, likeType      string
			durationMS, createdAtMS int64
		)
		if err := rows.Scan(&o.RequestID, &o.Kind, &itemType, &o.ItemID, &likeType,
			&o.Result, &o.Error, &durationMS, &createdAtMS); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		o.ItemType = models.ItemType(itemType)
		o.LikeType = models.LikeType(likeType)
		o.Duration = time.Duration(durationMS) * time.Millisecond
		o.At = time.UnixMilli(createdAtMS)
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	return outcomes, nil
}

// Observer returns a callback for widget.Options.OnOutcome. Write
// failures are logged, never returned to the widget.
func (j *Journal) Observer(ctx context.Context, logger *slog.Logger) func(models.Outcome) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(o models.Outcome) {
		if err := j.Record(ctx, o); err != nil {
			logger.Warn("journal write failed", "request_id", o.RequestID, "error", err)
		}
	}
}
