package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/adapters/memory"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/layer"
	"github.com/emiliopalmerini/dwstyles/internal/reconcile"
)

var importCmd = &cobra.Command{
	Use:   "import [file|-]",
	Short: "Import the colors of a theme layer",
	Long: `Parse a theme layer and record its colors.

The layer's redist_uniq label selects the theme. Colors are always recorded;
theme colors are only written when the theme exists.

A layer kept with --archive can be imported again with --from-archive.

Examples:
  dwstyles import beechy.s2
  pbpaste | dwstyles import --dry-run
  dwstyles import beechy.s2 --archive
  dwstyles import --from-archive ~/.local/share/dwstyles/layers/bases_beechy-20260101T120000.000000000.s2.gz`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

var (
	importDryRun      bool
	importArchive     bool
	importFromArchive string
)

const reconcileAttempts = 3

func init() {
	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "Show what would change without writing")
	importCmd.Flags().BoolVar(&importArchive, "archive", false, "Keep a compressed copy of the layer text")
	importCmd.Flags().StringVar(&importFromArchive, "from-archive", "", "Import a layer kept with --archive")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if importFromArchive != "" {
		if len(args) > 0 {
			return fmt.Errorf("--from-archive does not take a file argument")
		}
		if importArchive {
			return fmt.Errorf("--archive cannot be combined with --from-archive")
		}
	}

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	text, err := importText(cmd, app, args)
	if err != nil {
		return err
	}
	l := layer.Parse(text)
	printParse(out, l)

	target := app
	if importDryRun {
		target, err = scratchApp(ctx, app, l)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Dry run: nothing will be saved")
	}

	result, err := target.Reconciler.ReconcileWithRetry(ctx, l, reconcileAttempts)
	if result != nil {
		printReconcile(out, result)
	}
	if errors.Is(err, domain.ErrUnresolvedTheme) {
		fmt.Fprintf(out, "\nNo theme is labelled %q. Create it with:\n", l.LabelOrEmpty())
		fmt.Fprintf(out, "  dwstyles theme create <name> --layout <codename> --label %s\n", orDash(l.LabelOrEmpty()))
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to import layer: %w", err)
	}

	outcome, err := target.Contrast.Classify(ctx, result.Theme.ID)
	if err != nil {
		return fmt.Errorf("failed to classify contrast: %w", err)
	}
	if !outcome.Skipped {
		fmt.Fprintf(out, "Contrast: %s on %s, ratio %.2f\n", outcome.Foreground.Hex, outcome.Background.Hex, outcome.Ratio)
		printTagChanges(out, outcome.Added, outcome.Removed)
	}

	if importArchive && !importDryRun && app.Archive != nil {
		path, err := app.Archive.Store(ctx, l.LabelOrEmpty(), text)
		if err != nil {
			return fmt.Errorf("failed to archive layer: %w", err)
		}
		fmt.Fprintf(out, "Archived to %s\n", path)
	}
	return nil
}

// importText returns the layer text from the archive, a file or stdin.
func importText(cmd *cobra.Command, app *AppContext, args []string) (string, error) {
	if importFromArchive == "" {
		return readInput(cmd, args)
	}
	if app.Archive == nil {
		return "", fmt.Errorf("no layer archive configured")
	}
	text, err := app.Archive.Load(cmd.Context(), importFromArchive)
	if err != nil {
		return "", fmt.Errorf("failed to load archived layer: %w", err)
	}
	return text, nil
}

func printParse(out io.Writer, l *layer.Layer) {
	fmt.Fprintf(out, "Label: %s\n", orDash(l.LabelOrEmpty()))
	fmt.Fprintf(out, "Colors: %d\n", len(l.Colors))
	for _, r := range l.Rejected {
		fmt.Fprintf(out, "  skipped line %d: %s = %q (%v)\n", r.Line, r.Variable, r.Value, r.Err)
	}
}

func printReconcile(out io.Writer, r *reconcile.Result) {
	fmt.Fprintf(out, "New colors: %d\n", len(r.ColorsCreated))
	if r.Theme == nil {
		return
	}
	fmt.Fprintf(out, "Theme: %s (%s)\n", r.Theme.Name, r.Theme.LabelID)
	fmt.Fprintf(out, "Theme colors: %d created, %d updated\n", len(r.Created), len(r.Updated))
	for _, tc := range r.Created {
		fmt.Fprintf(out, "  + %s %-7s %s\n", tc.ColorHex, tc.Category, tc.Variables)
	}
	for _, tc := range r.Updated {
		fmt.Fprintf(out, "  ~ %s %-7s %s\n", tc.ColorHex, tc.Category, tc.Variables)
	}
}

func printTagChanges(out io.Writer, added, removed []string) {
	if len(added) > 0 {
		fmt.Fprintf(out, "  tagged: %s\n", strings.Join(added, ", "))
	}
	if len(removed) > 0 {
		fmt.Fprintf(out, "  untagged: %s\n", strings.Join(removed, ", "))
	}
}

// scratchApp copies the state a layer import reads into a memory store: the
// layer's existing colors, and the labelled theme with its layout, tags and
// theme colors.
func scratchApp(ctx context.Context, app *AppContext, l *layer.Layer) (*AppContext, error) {
	scratch := NewMemoryAppContext(app.Config, memory.NewStore())
	scratch.Logger = app.Logger

	copyColor := func(hex string) error {
		existing, err := scratch.ColorRepo.GetByHex(ctx, hex)
		if err != nil || existing != nil {
			return err
		}
		c, err := app.ColorRepo.GetByHex(ctx, hex)
		if err != nil {
			return fmt.Errorf("failed to get color %s: %w", hex, err)
		}
		if c == nil {
			return nil
		}
		return scratch.ColorRepo.Create(ctx, c)
	}

	for _, hex := range l.Hexes() {
		if err := copyColor(hex); err != nil {
			return nil, err
		}
	}

	label := l.LabelOrEmpty()
	if label == "" {
		return scratch, nil
	}
	theme, err := app.ThemeRepo.GetByLabel(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("failed to get theme %q: %w", label, err)
	}
	if theme == nil {
		return scratch, nil
	}

	layout, err := app.LayoutRepo.GetByID(ctx, theme.LayoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}
	if layout == nil {
		layout = &domain.Layout{ID: theme.LayoutID, Name: theme.LayoutID, Codename: theme.LayoutID}
	}
	if err := scratch.LayoutRepo.Create(ctx, layout); err != nil {
		return nil, err
	}
	if err := scratch.ThemeRepo.Create(ctx, theme); err != nil {
		return nil, err
	}

	tags, err := app.ThemeRepo.ListTags(ctx, theme.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list theme tags: %w", err)
	}
	for _, p := range tags {
		if err := scratch.PropertyRepo.Create(ctx, p); err != nil {
			return nil, err
		}
		if err := scratch.ThemeRepo.AddTag(ctx, theme.ID, p.ID); err != nil {
			return nil, err
		}
	}

	tcs, err := app.ThemeColorRepo.ListByTheme(ctx, theme.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list theme colors: %w", err)
	}
	for _, tc := range tcs {
		if err := copyColor(tc.ColorHex); err != nil {
			return nil, err
		}
		if err := scratch.ThemeColorRepo.Create(ctx, tc); err != nil {
			return nil, err
		}
	}
	return scratch, nil
}
