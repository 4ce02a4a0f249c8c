package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  dwstyles migrate      # Run all pending migrations
  dwstyles migrate 1    # Migrate to version 1
  dwstyles migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	target := -1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
		target = v
	}

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.DB == nil {
		return fmt.Errorf("migrate needs a database connection")
	}

	out := cmd.OutOrStdout()
	current, _, err := migrate.GetCurrentVersion(cmd.Context(), app.DB)
	if err == nil {
		fmt.Fprintf(out, "Current version: %d\n", current)
	}

	return migrate.New(app.DB, out).To(cmd.Context(), target)
}
