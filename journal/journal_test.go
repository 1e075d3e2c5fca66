// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/askme-reactions/models"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()

	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(context.Background(), TypeSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_UnsupportedType(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", "whatever"); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	j := openTestJournal(t)

	for i := 0; i < 2; i++ {
		if err := CreateSchema(context.Background(), j.db); err != nil {
			t.Fatalf("CreateSchema() call %d error = %v", i+1, err)
		}
	}
}

func TestRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	base := time.UnixMilli(1_760_000_000_000)

	outcomes := []models.Outcome{
		{
			RequestID: "req-1",
			Kind:      models.KindReaction,
			ItemType:  models.ItemQuestion,
			ItemID:    "42",
			LikeType:  models.Like,
			Result:    "7",
			Duration:  120 * time.Millisecond,
			At:        base,
		},
		{
			RequestID: "req-2",
			Kind:      models.KindCorrectness,
			ItemType:  models.ItemAnswer,
			ItemID:    "5",
			Error:     "unexpected response status: 403",
			Duration:  15 * time.Millisecond,
			At:        base.Add(time.Second),
		},
	}
	for _, o := range outcomes {
		if err := j.Record(ctx, o); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(got))
	}

	// Newest first
	if got[0].RequestID != "req-2" || got[1].RequestID != "req-1" {
		t.Errorf("unexpected order: %s, %s", got[0].RequestID, got[1].RequestID)
	}
	if got[0].OK() || got[0].Error != outcomes[1].Error {
		t.Errorf("failed outcome not preserved: %+v", got[0])
	}
	first := got[1]
	if first.Kind != models.KindReaction || first.ItemType != models.ItemQuestion ||
		first.ItemID != "42" || first.LikeType != models.Like || first.Result != "7" {
		t.Errorf("reaction outcome not preserved: %+v", first)
	}
	if first.Duration != 120*time.Millisecond {
		t.Errorf("Duration = %v, want 120ms", first.Duration)
	}
	if !first.At.Equal(base) {
		t.Errorf("At = %v, want %v", first.At, base)
	}

	limited, err := j.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent(1) error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Recent(1) returned %d rows", len(limited))
	}
}

func TestRecord_DuplicateRequestID(t *testing.T) {
	j := openTestJournal(t)
	o := models.Outcome{RequestID: "dup", Kind: models.KindReaction, ItemType: models.ItemAnswer, ItemID: "1", At: time.Now()}

	if err := j.Record(context.Background(), o); err != nil {
		t.Fatalf("first Record() error = %v", err)
	}
	if err := j.Record(context.Background(), o); err == nil {
		t.Error("expected error for duplicate request id")
	}
}

func TestObserver(t *testing.T) {
	j := openTestJournal(t)
	observe := j.Observer(context.Background(), nil)

	observe(models.Outcome{RequestID: "obs-1", Kind: models.KindReaction, ItemType: models.ItemQuestion, ItemID: "3", At: time.Now()})
	// Invalid kind violates the CHECK constraint; logged, not panicking
	observe(models.Outcome{RequestID: "obs-2", Kind: "bogus", ItemType: models.ItemQuestion, ItemID: "3", At: time.Now()})

	got, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 || got[0].RequestID != "obs-1" {
		t.Errorf("expected only obs-1 to be stored, got %+v", got)
	}
}

func TestRebind(t *testing.T) {
	pg := &Journal{dbType: TypePostgres}
	if got := pg.rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Errorf("postgres rebind = %q", got)
	}
	lite := &Journal{dbType: TypeSQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind = %q", got)
	}
}
