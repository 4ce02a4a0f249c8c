// Package migrate applies the embedded schema migrations with a
// schema_migrations version table and a dirty flag.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/emiliopalmerini/dwstyles/migrations"
)

// Migration represents a single database migration with up and down SQL.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

var upPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// Migrator runs migrations against one database and reports progress to Out.
type Migrator struct {
	DB  *sql.DB
	Out io.Writer
}

func New(db *sql.DB, out io.Writer) *Migrator {
	if out == nil {
		out = io.Discard
	}
	return &Migrator{DB: db, Out: out}
}

// EnsureMigrationsTable creates the schema_migrations table if it doesn't exist.
func EnsureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

// GetCurrentVersion returns the current migration version and dirty state.
func GetCurrentVersion(ctx context.Context, db *sql.DB) (int, bool, error) {
	var version int
	var dirty int

	err := db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return version, dirty == 1, nil
}

// SetVersion sets the migration version and dirty state.
func SetVersion(ctx context.Context, db *sql.DB, version int, dirty bool) error {
	dirtyInt := 0
	if dirty {
		dirtyInt = 1
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	if version <= 0 {
		return nil
	}
	_, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, dirtyInt)
	return err
}

// LoadMigrations reads all embedded migration files sorted by version.
func LoadMigrations() ([]Migration, error) {
	return loadFrom(migrations.FS)
}

func loadFrom(fsys fs.FS) ([]Migration, error) {
	var result []Migration

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := upPattern.FindStringSubmatch(filepath.Base(path))
		if matches == nil {
			return nil
		}

		version, _ := strconv.Atoi(matches[1])
		name := matches[2]

		upSQL, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		downSQL, err := fs.ReadFile(fsys, fmt.Sprintf("%s_%s.down.sql", matches[1], name))
		if err != nil {
			downSQL = nil
		}

		result = append(result, Migration{
			Version: version,
			Name:    name,
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	return result, nil
}

// SplitSQL splits a SQL script into statements on semicolons, dropping
// blank statements. Statements must not contain literal semicolons.
func SplitSQL(script string) []string {
	var stmts []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// Run executes a single migration (up or down).
func (m *Migrator) Run(ctx context.Context, mig Migration, up bool) error {
	direction := "up"
	script := mig.UpSQL
	targetVersion := mig.Version
	if !up {
		direction = "down"
		script = mig.DownSQL
		targetVersion = mig.Version - 1
	}

	fmt.Fprintf(m.Out, "  %s %03d_%s\n", direction, mig.Version, mig.Name)

	if err := SetVersion(ctx, m.DB, mig.Version, true); err != nil {
		return fmt.Errorf("failed to set dirty flag: %w", err)
	}

	for _, stmt := range SplitSQL(script) {
		if _, err := m.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %d %s: %w\nSQL: %s", mig.Version, direction, err, stmt)
		}
	}

	if err := SetVersion(ctx, m.DB, targetVersion, false); err != nil {
		return fmt.Errorf("failed to clear dirty flag: %w", err)
	}
	return nil
}

// To migrates up or down to target. A negative target applies every
// pending migration.
func (m *Migrator) To(ctx context.Context, target int) error {
	if err := EnsureMigrationsTable(ctx, m.DB); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, dirty, err := GetCurrentVersion(ctx, m.DB)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", current)
	}

	all, err := LoadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	if target < 0 && len(all) > 0 {
		target = all[len(all)-1].Version
	}

	switch {
	case target > current:
		for _, mig := range all {
			if mig.Version <= current || mig.Version > target {
				continue
			}
			if err := m.Run(ctx, mig, true); err != nil {
				return err
			}
		}
	case target < current:
		for i := len(all) - 1; i >= 0; i-- {
			mig := all[i]
			if mig.Version > current || mig.Version <= target {
				continue
			}
			if mig.DownSQL == "" {
				return fmt.Errorf("no down migration for version %d", mig.Version)
			}
			if err := m.Run(ctx, mig, false); err != nil {
				return err
			}
		}
	default:
		fmt.Fprintln(m.Out, "No migrations to run")
		return nil
	}

	fmt.Fprintf(m.Out, "Migrated to version %d\n", target)
	return nil
}

// RunAll runs all pending migrations on the provided database.
func RunAll(ctx context.Context, db *sql.DB) error {
	return New(db, nil).To(ctx, -1)
}
