package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

var rootCmd = &cobra.Command{
	Use:   "dwstyles",
	Short: "Color catalog for journal themes",
	Long: `dwstyles catalogs the colors used by journal themes.

Import theme layers to record their colors, group colors by hue and
character, compute perceptual distances between colors, and tag themes
by their text contrast.`,
	SilenceUsage: true,
}

// Execute runs the root command. An unresolved theme exits with status 2.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, domain.ErrUnresolvedTheme) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
}
