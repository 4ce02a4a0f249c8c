// Package web serves the catalog as a JSON API.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/dwstyles/internal/contrast"
	"github.com/emiliopalmerini/dwstyles/internal/distance"
	"github.com/emiliopalmerini/dwstyles/internal/infrastructure/config"
	"github.com/emiliopalmerini/dwstyles/internal/ports"
	"github.com/emiliopalmerini/dwstyles/internal/reconcile"
)

// Services are the catalog dependencies the handlers call.
type Services struct {
	Colors     ports.ColorRepository
	Groups     ports.ColorGroupRepository
	Themes     ports.ThemeRepository
	Reconciler *reconcile.Service
	Contrast   *contrast.Classifier
	Distances  *distance.Index
	Archive    ports.LayerArchive
}

type Server struct {
	cfg    config.Server
	svc    Services
	logger zerolog.Logger
	router chi.Router
}

func NewServer(cfg config.Server, svc Services, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		svc:    svc,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/colors/{hex}", s.handleColor)
		r.Get("/colors/{hex}/nearby", s.handleNearby)
		r.Get("/groups", s.handleGroups)
		r.Get("/groups/{codename}/colors", s.handleGroupColors)
		r.Get("/themes", s.handleThemes)
		r.Get("/themes/{id}/colors", s.handleThemeColors)
		r.Post("/layers", s.handleImportLayer)
	})
}

// Start serves until ctx is cancelled, then shuts down within the
// configured timeout.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("addr", s.cfg.Addr).Msg("starting server")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("server shutdown error")
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
