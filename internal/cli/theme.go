package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/reconcile"
	"github.com/emiliopalmerini/dwstyles/internal/util"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage themes",
	Long:  `Create, list and inspect themes.`,
}

var themeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a theme",
	Long: `Create a theme under a layout. The label is the redist_uniq value of
the theme's layer, which is how imports find the theme.

Examples:
  dwstyles theme create Beechy --layout bases --label bases/beechy`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeCreate,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all themes",
	RunE:  runThemeList,
}

var themeColorsCmd = &cobra.Command{
	Use:   "colors <label>",
	Short: "Show the colors of a theme",
	Long: `Show a theme's feature and accent colors, ordered by hue, saturation
and value.

Examples:
  dwstyles theme colors bases/beechy`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeColors,
}

var (
	themeLayout   string
	themeLabel    string
	themeOfficial bool
)

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeCreateCmd)
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeColorsCmd)

	themeCreateCmd.Flags().StringVarP(&themeLayout, "layout", "L", "", "Codename of the owning layout (required)")
	themeCreateCmd.Flags().StringVarP(&themeLabel, "label", "l", "", "redist_uniq label of the theme layer (required)")
	themeCreateCmd.Flags().BoolVar(&themeOfficial, "official", false, "Mark the theme as official")
	_ = themeCreateCmd.MarkFlagRequired("layout")
	_ = themeCreateCmd.MarkFlagRequired("label")
}

func runThemeCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	layout, err := getLayoutByCodename(ctx, app.LayoutRepo, themeLayout)
	if err != nil {
		return err
	}

	existing, err := app.ThemeRepo.GetByLabel(ctx, themeLabel)
	if err != nil {
		return fmt.Errorf("failed to get theme: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("theme with label %q already exists", themeLabel)
	}

	theme := &domain.Theme{
		LayoutID: layout.ID,
		Name:     args[0],
		LabelID:  themeLabel,
		Official: themeOfficial,
	}
	if err := app.ThemeRepo.Create(ctx, theme); err != nil {
		return fmt.Errorf("failed to create theme: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created theme: %s (%s)\n", theme.Name, theme.LabelID)
	return nil
}

func runThemeList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	themes, err := app.ThemeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(themes) == 0 {
		fmt.Fprintln(out, "No themes found")
		return nil
	}

	layouts := make(map[string]string)
	w := newTabWriter(out)
	fmt.Fprintln(w, "NAME\tLABEL\tLAYOUT\tTAGS\tCREATED")
	fmt.Fprintln(w, "----\t-----\t------\t----\t-------")
	for _, t := range themes {
		codename, ok := layouts[t.LayoutID]
		if !ok {
			layout, err := app.LayoutRepo.GetByID(ctx, t.LayoutID)
			if err != nil {
				return fmt.Errorf("failed to get layout: %w", err)
			}
			codename = t.LayoutID
			if layout != nil {
				codename = layout.Codename
			}
			layouts[t.LayoutID] = codename
		}

		tags, err := app.ThemeRepo.ListTags(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		names := make([]string, len(tags))
		for i, p := range tags {
			names[i] = p.Codename
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Name, t.LabelID, codename, orDash(strings.Join(names, ",")), util.FormatDateISO(t.CreatedAt))
	}
	return w.Flush()
}

func runThemeColors(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	theme, err := getThemeByLabel(ctx, app.ThemeRepo, args[0])
	if err != nil {
		return err
	}
	palette, err := app.Reconciler.Palette(ctx, theme.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n\n", theme.Name, theme.LabelID)
	if err := printPalette(out, "Feature colors", palette.Features); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return printPalette(out, "Accent colors", palette.Accents)
}

func printPalette(out io.Writer, title string, entries []reconcile.PaletteEntry) error {
	fmt.Fprintln(out, title)
	if len(entries) == 0 {
		fmt.Fprintln(out, "  none")
		return nil
	}
	w := newTabWriter(out)
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", swatch(e.Color), e.Color.Hex, util.FormatHSV(e.Color.HSV.H, e.Color.HSV.S, e.Color.HSV.V), e.ThemeColor.Variables)
	}
	return w.Flush()
}
