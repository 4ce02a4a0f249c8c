package migrate

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"

	_ "github.com/tursodatabase/go-libsql"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("libsql", "file::memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSplitSQL(t *testing.T) {
	got := SplitSQL("CREATE TABLE a (x INT);\n\n  DROP TABLE b ;\n")
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if got[1] != "DROP TABLE b" {
		t.Errorf("expected trimmed statement, got %q", got[1])
	}
}

func TestLoadMigrations(t *testing.T) {
	all, err := LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations failed: %v", err)
	}
	if len(all) < 2 {
		t.Fatalf("expected at least 2 migrations, got %d", len(all))
	}
	for i, m := range all {
		if m.Version != i+1 {
			t.Errorf("migration %d has version %d", i, m.Version)
		}
		if m.DownSQL == "" {
			t.Errorf("migration %d_%s has no down script", m.Version, m.Name)
		}
	}
}

func TestRunAll_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	if err := RunAll(ctx, db); err != nil {
		t.Fatalf("first RunAll failed: %v", err)
	}
	if err := RunAll(ctx, db); err != nil {
		t.Fatalf("second RunAll failed: %v", err)
	}

	var groups int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM color_groups`).Scan(&groups); err != nil {
		t.Fatalf("count groups failed: %v", err)
	}
	if groups != 15 {
		t.Errorf("expected 15 seeded groups, got %d", groups)
	}
}

func TestMigrator_DownAndUp(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	var out bytes.Buffer
	m := New(db, &out)

	if err := m.To(ctx, -1); err != nil {
		t.Fatalf("migrate up failed: %v", err)
	}
	if err := m.To(ctx, 0); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	version, dirty, err := GetCurrentVersion(ctx, db)
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 || dirty {
		t.Errorf("expected clean version 0, got %d dirty=%v", version, dirty)
	}

	if err := m.To(ctx, 1); err != nil {
		t.Fatalf("migrate to 1 failed: %v", err)
	}
	if !strings.Contains(out.String(), "Migrated to version 1") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestMigrator_RefusesDirty(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	if err := EnsureMigrationsTable(ctx, db); err != nil {
		t.Fatal(err)
	}
	if err := SetVersion(ctx, db, 1, true); err != nil {
		t.Fatal(err)
	}

	if err := RunAll(ctx, db); err == nil {
		t.Error("expected error on dirty database")
	}
}
