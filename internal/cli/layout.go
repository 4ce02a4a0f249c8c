package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Manage layouts",
	Long:  `Create and list the layouts that own themes.`,
}

var layoutCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a layout",
	Long: `Create a layout.

Examples:
  dwstyles layout create "Tabula Rasa" --codename bases --official`,
	Args: cobra.ExactArgs(1),
	RunE: runLayoutCreate,
}

var layoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all layouts",
	RunE:  runLayoutList,
}

var (
	layoutCodename string
	layoutLabel    string
	layoutOfficial bool
)

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutCreateCmd)
	layoutCmd.AddCommand(layoutListCmd)

	layoutCreateCmd.Flags().StringVarP(&layoutCodename, "codename", "c", "", "Layout codename (required)")
	layoutCreateCmd.Flags().StringVarP(&layoutLabel, "label", "l", "", "redist_uniq label of the layout layer")
	layoutCreateCmd.Flags().BoolVar(&layoutOfficial, "official", false, "Mark the layout as official")
	_ = layoutCreateCmd.MarkFlagRequired("codename")
}

func runLayoutCreate(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	layout := &domain.Layout{
		Name:     args[0],
		Codename: layoutCodename,
		Official: layoutOfficial,
	}
	if layoutLabel != "" {
		label := layoutLabel
		layout.LabelID = &label
	}

	if err := app.LayoutRepo.Create(cmd.Context(), layout); err != nil {
		return fmt.Errorf("failed to create layout: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created layout: %s (%s)\n", layout.Name, layout.Codename)
	return nil
}

func runLayoutList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	layouts, err := app.LayoutRepo.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list layouts: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(layouts) == 0 {
		fmt.Fprintln(out, "No layouts found")
		return nil
	}

	w := newTabWriter(out)
	fmt.Fprintln(w, "NAME\tCODENAME\tLABEL\tOFFICIAL")
	fmt.Fprintln(w, "----\t--------\t-----\t--------")
	for _, l := range layouts {
		label := ""
		if l.LabelID != nil {
			label = *l.LabelID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Name, l.Codename, orDash(label), yesNo(l.Official))
	}
	return w.Flush()
}
