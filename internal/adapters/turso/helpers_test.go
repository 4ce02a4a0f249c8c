package turso_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/dwstyles/internal/adapters/turso"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/migrate"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	// Concurrent writers on a shared-cache memory database hit table locks.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	ctx := context.Background()
	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedColor(t *testing.T, repos *turso.Repositories, hex string, inThemes bool) *domain.Color {
	t.Helper()
	c, err := domain.NewColor(hex)
	if err != nil {
		t.Fatalf("NewColor(%s) failed: %v", hex, err)
	}
	c.InThemes = inThemes
	if err := repos.Colors.Create(context.Background(), c); err != nil {
		t.Fatalf("Create color %s failed: %v", hex, err)
	}
	return c
}

func seedTheme(t *testing.T, repos *turso.Repositories, label string) *domain.Theme {
	t.Helper()
	ctx := context.Background()

	layout, err := repos.Layouts.GetByCodename(ctx, "bases")
	if err != nil {
		t.Fatalf("GetByCodename failed: %v", err)
	}
	if layout == nil {
		layout = &domain.Layout{Name: "Base", Codename: "bases", Official: true}
		if err := repos.Layouts.Create(ctx, layout); err != nil {
			t.Fatalf("Create layout failed: %v", err)
		}
	}

	theme := &domain.Theme{LayoutID: layout.ID, Name: label, LabelID: label, Official: true}
	if err := repos.Themes.Create(ctx, theme); err != nil {
		t.Fatalf("Create theme failed: %v", err)
	}
	return theme
}
