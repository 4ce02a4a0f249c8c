package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/adapters/otel"
	"github.com/emiliopalmerini/dwstyles/internal/adapters/storage"
	"github.com/emiliopalmerini/dwstyles/internal/adapters/turso"
	"github.com/emiliopalmerini/dwstyles/internal/distance"
	"github.com/emiliopalmerini/dwstyles/internal/infrastructure/config"
	"github.com/emiliopalmerini/dwstyles/internal/migrate"
)

// useTestApp points every command at a migrated SQLite file in a temp dir.
func useTestApp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Database: config.Database{URL: "file:" + filepath.Join(dir, "test.db")},
		Batch:    config.Batch{Workers: 2},
	}

	db, err := turso.NewDB(cfg.Database)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := migrate.RunAll(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	_ = db.Close()

	archive, err := storage.NewLayerArchiveAt(filepath.Join(dir, "layers"))
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}

	orig := newApp
	newApp = func(cmd *cobra.Command) (*AppContext, error) {
		db, err := turso.NewDB(cfg.Database)
		if err != nil {
			return nil, err
		}
		a := &AppContext{
			Config:  cfg,
			DB:      db,
			Logger:  zerolog.Nop(),
			Archive: archive,
			Metrics: otel.NewNoOpExporter(),
		}
		a.useTurso(turso.NewRepositories(db))
		a.wire()
		return a, nil
	}
	t.Cleanup(func() { newApp = orig })
}

// runCLI executes the root command with args and returns its output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags() {
	importDryRun = false
	importArchive = false
	importFromArchive = ""
	layoutCodename, layoutLabel, layoutOfficial = "", "", false
	themeLayout, themeLabel, themeOfficial = "", "", false
	groupLabel, groupCategory, groupDisplayColor, groupDescription = "", "color", "#808080", ""
	distanceWorkers = 0
	nearbyMax = distance.DefaultMaxDistance
	serveAddr = ""
}
