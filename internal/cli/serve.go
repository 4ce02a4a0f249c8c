package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API server",
	Long: `Start the catalog API server.

Examples:
  dwstyles serve                 # Listen on DWSTYLES_ADDR (default :8080)
  dwstyles serve --addr :3000    # Listen on port 3000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Address to listen on (overrides DWSTYLES_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.Config.Server
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(cfg, webServices(app), app.Logger.With().Str("component", "web").Logger())
	return server.Start(ctx)
}

func webServices(app *AppContext) web.Services {
	return web.Services{
		Colors:     app.ColorRepo,
		Groups:     app.GroupRepo,
		Themes:     app.ThemeRepo,
		Reconciler: app.Reconciler,
		Contrast:   app.Contrast,
		Distances:  app.Distances,
		Archive:    app.Archive,
	}
}

