package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/ports"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// readInput returns the contents of the file named by args[0], or stdin when
// no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func getThemeByLabel(ctx context.Context, repo ports.ThemeRepository, label string) (*domain.Theme, error) {
	theme, err := repo.GetByLabel(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("failed to get theme: %w", err)
	}
	if theme == nil {
		return nil, fmt.Errorf("theme %q not found", label)
	}
	return theme, nil
}

func getLayoutByCodename(ctx context.Context, repo ports.LayoutRepository, codename string) (*domain.Layout, error) {
	layout, err := repo.GetByCodename(ctx, codename)
	if err != nil {
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}
	if layout == nil {
		return nil, fmt.Errorf("layout %q not found", codename)
	}
	return layout, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}
