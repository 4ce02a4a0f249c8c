package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/distance"
	"github.com/emiliopalmerini/dwstyles/internal/util"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Manage the bucket color grid",
}

var gridSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create every bucket color",
	Long: `Create the 729 bucket colors whose channels are multiples of 32
(or 255). Existing colors are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runGridSeed,
}

var distancesCmd = &cobra.Command{
	Use:   "distances",
	Short: "Manage cached color distances",
}

var distancesBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compute missing distances between bucket colors",
	Long: `Compute the perceptual distance between every pair of bucket colors
that has none cached yet. Existing distances are kept.

Examples:
  dwstyles distances build
  dwstyles distances build --workers 4`,
	Args: cobra.NoArgs,
	RunE: runDistancesBuild,
}

var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Update automatic color group memberships",
	Long: `Re-evaluate the automatic color groups for every color used by a
theme. Manual groups are not touched.`,
	Args: cobra.NoArgs,
	RunE: runCategorize,
}

var contrastCmd = &cobra.Command{
	Use:   "contrast",
	Short: "Tag every theme by text contrast",
	Long: `Classify every theme as dark-on-light or light-on-dark and as high or
low contrast, from its entry or page text and background colors.`,
	Args: cobra.NoArgs,
	RunE: runContrast,
}

var distanceWorkers int

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.AddCommand(gridSeedCmd)
	rootCmd.AddCommand(distancesCmd)
	distancesCmd.AddCommand(distancesBuildCmd)
	rootCmd.AddCommand(categorizeCmd)
	rootCmd.AddCommand(contrastCmd)

	distancesBuildCmd.Flags().IntVarP(&distanceWorkers, "workers", "w", 0, "Concurrent workers (default: DWSTYLES_WORKERS or CPU count)")
}

func runGridSeed(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	n, err := app.Distances.SeedGrid(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d bucket colors\n", n)
	return nil
}

func runDistancesBuild(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	index := app.Distances
	if distanceWorkers > 0 {
		index = distance.NewIndex(app.ColorRepo, app.ThemeColorRepo, app.DistanceRepo, app.Metrics, app.Logger, distance.WithWorkers(distanceWorkers))
	}

	result, err := index.Build(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Computed %d distances, %d already cached (%s)\n",
		result.Computed, result.Skipped, util.FormatDuration(result.Duration))
	return nil
}

func runCategorize(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.Categorizer.Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d colors: %d changed, %d memberships added, %d removed\n",
		result.ColorsScanned, result.ColorsChanged, result.Added, result.Removed)
	return nil
}

func runContrast(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	outcomes, err := app.Contrast.ClassifyAll(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(outcomes) == 0 {
		fmt.Fprintln(out, "No themes found")
		return nil
	}

	w := newTabWriter(out)
	fmt.Fprintln(w, "THEME\tTEXT\tBACKGROUND\tRATIO\tADDED\tREMOVED")
	fmt.Fprintln(w, "-----\t----\t----------\t-----\t-----\t-------")
	for _, o := range outcomes {
		label := o.ThemeID
		if t, err := app.ThemeRepo.GetByID(ctx, o.ThemeID); err == nil && t != nil {
			label = t.LabelID
		}
		if o.Skipped {
			fmt.Fprintf(w, "%s\t-\t-\tskipped\t-\t-\n", label)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n", label, o.Foreground.Hex, o.Background.Hex, o.Ratio,
			orDash(joinComma(o.Added)), orDash(joinComma(o.Removed)))
	}
	return w.Flush()
}
