package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/categorizer"
	"github.com/emiliopalmerini/dwstyles/internal/distance"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/util"
)

var colorCmd = &cobra.Command{
	Use:   "color <hex>",
	Short: "Show a color",
	Long: `Show a color's channels, groups, and the theme colors similar or near
to it. Colors that are not in the catalog are computed on the fly.

Examples:
  dwstyles color "#336699"
  dwstyles color fff`,
	Args: cobra.ExactArgs(1),
	RunE: runColor,
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby <hex>",
	Short: "List theme colors near a color",
	Long: `List theme colors whose bucket lies within --max delta-E of the
color's bucket, closest first. Run "dwstyles grid seed" and
"dwstyles distances build" first.

Examples:
  dwstyles nearby 336699
  dwstyles nearby 336699 --max 20`,
	Args: cobra.ExactArgs(1),
	RunE: runNearby,
}

var nearbyMax float64

func init() {
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(nearbyCmd)

	nearbyCmd.Flags().Float64VarP(&nearbyMax, "max", "m", distance.DefaultMaxDistance, "Maximum delta-E distance")
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#737373")).Width(10)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// swatch renders a small block filled with c.
func swatch(c *domain.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.CSSHex())).
		Render("    ")
}

// banner renders c's hex on a block of c in its contrasting text color.
func banner(c *domain.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.CSSHex())).
		Foreground(lipgloss.Color("#" + c.ContrastText())).
		Padding(0, 2).
		Render(c.CSSHex())
}

func runColor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := domain.NewColor(args[0])
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", args[0], err)
	}

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	stored, err := app.ColorRepo.GetByHex(ctx, c.Hex)
	if err != nil {
		return fmt.Errorf("failed to get color: %w", err)
	}
	if stored != nil {
		c = stored
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, banner(c))
	fmt.Fprintln(out)
	field(out, "RGB", fmt.Sprintf("%d, %d, %d", c.RGB.R, c.RGB.G, c.RGB.B))
	field(out, "HSV", util.FormatHSV(c.HSV.H, c.HSV.S, c.HSV.V))
	field(out, "Bucket", c.RoundedHex)
	field(out, "Catalog", yesNo(stored != nil))
	field(out, "In themes", yesNo(c.InThemes))

	var groups []string
	if stored != nil {
		memberships, err := app.GroupRepo.Memberships(ctx, c.Hex)
		if err != nil {
			return fmt.Errorf("failed to get color groups: %w", err)
		}
		for _, g := range memberships {
			groups = append(groups, g.Codename)
		}
	} else {
		groups = categorizer.Match(c.HSV)
	}
	field(out, "Groups", orDash(joinComma(groups)))

	similar, err := app.Distances.Similar(ctx, c.Hex)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Similar theme colors"))
	if len(similar) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for _, s := range similar {
		fmt.Fprintf(out, "  %s %s\n", swatch(s), s.Hex)
	}

	neighbors, err := app.Distances.Nearby(ctx, c.Hex, distance.DefaultMaxDistance)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Nearby theme colors"))
	return printNeighbors(out, neighbors)
}

func runNearby(cmd *cobra.Command, args []string) error {
	hex := args[0]
	if _, err := domain.NewColor(hex); err != nil {
		return fmt.Errorf("invalid color %q: %w", hex, err)
	}
	if nearbyMax <= 0 {
		return fmt.Errorf("invalid max distance %v: must be positive", nearbyMax)
	}

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	neighbors, err := app.Distances.Nearby(cmd.Context(), hex, nearbyMax)
	if err != nil {
		return err
	}
	return printNeighbors(cmd.OutOrStdout(), neighbors)
}

func printNeighbors(out io.Writer, neighbors []distance.Neighbor) error {
	if len(neighbors) == 0 {
		fmt.Fprintln(out, "  none")
		return nil
	}
	w := newTabWriter(out)
	for _, n := range neighbors {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", swatch(n.Color), n.Color.Hex, util.FormatDistance(n.Distance))
	}
	return w.Flush()
}

func field(out io.Writer, name, value string) {
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render(name), value)
}
