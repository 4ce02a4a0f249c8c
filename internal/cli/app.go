package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/dwstyles/internal/adapters/memory"
	"github.com/emiliopalmerini/dwstyles/internal/adapters/otel"
	"github.com/emiliopalmerini/dwstyles/internal/adapters/storage"
	"github.com/emiliopalmerini/dwstyles/internal/adapters/turso"
	"github.com/emiliopalmerini/dwstyles/internal/categorizer"
	"github.com/emiliopalmerini/dwstyles/internal/contrast"
	"github.com/emiliopalmerini/dwstyles/internal/distance"
	"github.com/emiliopalmerini/dwstyles/internal/infrastructure/config"
	"github.com/emiliopalmerini/dwstyles/internal/logging"
	"github.com/emiliopalmerini/dwstyles/internal/ports"
	"github.com/emiliopalmerini/dwstyles/internal/reconcile"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config *config.Config
	DB     *sql.DB
	Logger zerolog.Logger

	ColorRepo      ports.ColorRepository
	LayoutRepo     ports.LayoutRepository
	ThemeRepo      ports.ThemeRepository
	ThemeColorRepo ports.ThemeColorRepository
	DistanceRepo   ports.ColorDistanceRepository
	GroupRepo      ports.ColorGroupRepository
	PropertyRepo   ports.StylePropertyRepository
	Archive        ports.LayerArchive
	Metrics        ports.MetricsExporter

	Reconciler  *reconcile.Service
	Categorizer *categorizer.Service
	Distances   *distance.Index
	Contrast    *contrast.Classifier
}

// newApp builds the AppContext for a command. Tests replace it.
var newApp = func(cmd *cobra.Command) (*AppContext, error) {
	return NewAppContext(cmd.Context())
}

// NewAppContext loads configuration, configures logging and connects to the
// catalog database.
func NewAppContext(ctx context.Context) (*AppContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Init(cfg.Log.Level, cfg.Log.Format, nil); err != nil {
		return nil, err
	}

	db, err := turso.NewDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	archive, err := storage.NewLayerArchive()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize layer archive: %w", err)
	}

	var metrics ports.MetricsExporter = otel.NewNoOpExporter()
	if cfg.Otel.Enabled {
		exporter, err := otel.NewExporter(ctx, cfg.Otel)
		if err != nil {
			log := logging.Component("cli")
			log.Warn().Err(err).Msg("metrics disabled")
		} else {
			metrics = exporter
		}
	}

	a := &AppContext{
		Config:  cfg,
		DB:      db,
		Logger:  logging.Logger(),
		Archive: archive,
		Metrics: metrics,
	}
	a.useTurso(turso.NewRepositories(db))
	a.wire()
	return a, nil
}

// NewMemoryAppContext builds an AppContext over an in-process store. Nothing
// it writes is persisted.
func NewMemoryAppContext(cfg *config.Config, store *memory.Store) *AppContext {
	repos := memory.NewRepositories(store)
	a := &AppContext{
		Config:         cfg,
		Logger:         logging.Logger(),
		ColorRepo:      repos.Colors,
		LayoutRepo:     repos.Layouts,
		ThemeRepo:      repos.Themes,
		ThemeColorRepo: repos.ThemeColors,
		DistanceRepo:   repos.Distances,
		GroupRepo:      repos.Groups,
		PropertyRepo:   repos.Properties,
		Metrics:        otel.NewNoOpExporter(),
	}
	a.wire()
	return a
}

func (a *AppContext) useTurso(repos *turso.Repositories) {
	a.ColorRepo = repos.Colors
	a.LayoutRepo = repos.Layouts
	a.ThemeRepo = repos.Themes
	a.ThemeColorRepo = repos.ThemeColors
	a.DistanceRepo = repos.Distances
	a.GroupRepo = repos.Groups
	a.PropertyRepo = repos.Properties
}

// wire builds the services over the repositories already set on a.
func (a *AppContext) wire() {
	workers := 0
	if a.Config != nil {
		workers = a.Config.Batch.Workers
	}
	a.Reconciler = reconcile.NewService(a.ColorRepo, a.ThemeRepo, a.ThemeColorRepo, a.Metrics, a.Logger.With().Str("component", "reconcile").Logger())
	a.Categorizer = categorizer.NewService(a.ColorRepo, a.GroupRepo, a.Metrics, a.Logger.With().Str("component", "categorizer").Logger())
	a.Distances = distance.NewIndex(a.ColorRepo, a.ThemeColorRepo, a.DistanceRepo, a.Metrics, a.Logger.With().Str("component", "distance").Logger(), distance.WithWorkers(workers))
	a.Contrast = contrast.NewClassifier(a.ThemeRepo, a.ThemeColorRepo, a.ColorRepo, a.PropertyRepo, a.Logger.With().Str("component", "contrast").Logger())
}

// Close flushes metrics and releases the database.
func (a *AppContext) Close() error {
	if a.Metrics != nil {
		if err := a.Metrics.Close(context.Background()); err != nil {
			a.Logger.Warn().Err(err).Msg("failed to flush metrics")
		}
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
