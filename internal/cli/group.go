package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/categorizer"
	"github.com/emiliopalmerini/dwstyles/internal/colorspace"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage color groups",
	Long: `Create and list color groups. Groups whose codename has an automatic
rule are maintained by "dwstyles categorize"; other groups are manual.`,
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <codename>",
	Short: "Create a color group",
	Long: `Create a color group.

Examples:
  dwstyles group create favorites --label Favorites --category characteristic --display-color "#ffcc00"`,
	Args: cobra.ExactArgs(1),
	RunE: runGroupCreate,
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List color groups by category",
	RunE:  runGroupList,
}

var (
	groupLabel        string
	groupCategory     string
	groupDisplayColor string
	groupDescription  string
)

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupListCmd)

	groupCreateCmd.Flags().StringVarP(&groupLabel, "label", "l", "", "Display label (defaults to the codename)")
	groupCreateCmd.Flags().StringVarP(&groupCategory, "category", "c", string(domain.ColorGroupColor), "color or characteristic")
	groupCreateCmd.Flags().StringVar(&groupDisplayColor, "display-color", "#808080", "Color shown for the group")
	groupCreateCmd.Flags().StringVarP(&groupDescription, "description", "d", "", "Description of the group")
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	category := domain.ColorGroupCategory(groupCategory)
	if category != domain.ColorGroupColor && category != domain.ColorGroupCharacteristic {
		return fmt.Errorf("invalid category %q: want color or characteristic", groupCategory)
	}
	display, err := colorspace.Normalize(groupDisplayColor)
	if err != nil {
		return fmt.Errorf("invalid display color %q: %w", groupDisplayColor, err)
	}

	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	group := &domain.ColorGroup{
		Codename:     args[0],
		Label:        groupLabel,
		Category:     category,
		DisplayColor: "#" + display,
	}
	if group.Label == "" {
		group.Label = group.Codename
	}
	if groupDescription != "" {
		desc := groupDescription
		group.Description = &desc
	}

	if err := app.GroupRepo.Create(cmd.Context(), group); err != nil {
		return fmt.Errorf("failed to create color group: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created color group: %s\n", group.Codename)
	return nil
}

func runGroupList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	groups, err := app.GroupRepo.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list color groups: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(groups) == 0 {
		fmt.Fprintln(out, "No color groups found")
		return nil
	}

	byCategory := make(map[domain.ColorGroupCategory][]*domain.ColorGroup)
	for _, g := range groups {
		byCategory[g.Category] = append(byCategory[g.Category], g)
	}

	if err := printGroups(out, "Colors", byCategory[domain.ColorGroupColor]); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return printGroups(out, "Characteristics", byCategory[domain.ColorGroupCharacteristic])
}

func printGroups(out io.Writer, title string, groups []*domain.ColorGroup) error {
	fmt.Fprintln(out, title)
	w := newTabWriter(out)
	fmt.Fprintln(w, "CODENAME\tLABEL\tDISPLAY\tAUTOMATIC")
	fmt.Fprintln(w, "--------\t-----\t-------\t---------")
	for _, g := range groups {
		_, auto := categorizer.Lookup(g.Codename)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", g.Codename, g.Label, g.DisplayColor, yesNo(auto))
	}
	return w.Flush()
}
