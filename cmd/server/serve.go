package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sovereign/internal/api"
	"sovereign/internal/certs"
	"sovereign/internal/observability"
	"sovereign/internal/portal"
	"sovereign/internal/portfolio"
	"sovereign/internal/utils"
)

const certExpiryWarning = 30 * 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := observability.InitLogger("sovereign", cfg.LogLevel, cfg.Production())
		observability.RegisterMetrics()

		contentDir := utils.ResolvePath(cfg.ContentDir)
		portals, err := portal.Load(filepath.Join(contentDir, "portals"))
		if err != nil {
			return err
		}
		projects, err := portfolio.Load(filepath.Join(contentDir, "projects"))
		if err != nil {
			return err
		}
		logger.Info().
			Str("content_dir", contentDir).
			Int("portals", portals.Len()).
			Int("projects", projects.Len()).
			Msg("content loaded")

		srv, err := api.NewServer(api.Deps{
			Config:   cfg,
			Portals:  portals,
			Projects: projects,
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		httpServer := &http.Server{
			Addr:              cfg.Addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if cfg.TLS() {
			tlsConfig, leaf, err := certs.NewCertManager(utils.ResolvePath(cfg.TLSCert), utils.ResolvePath(cfg.TLSKey)).TLSConfig(time.Now())
			if err != nil {
				return err
			}
			if certs.ExpiresWithin(leaf, time.Now(), certExpiryWarning) {
				logger.Warn().Time("not_after", leaf.NotAfter).Str("subject", leaf.Subject.CommonName).Msg("tls certificate expires soon")
			}
			httpServer.TLSConfig = tlsConfig
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info().Str("addr", cfg.Addr).Str("env", cfg.Environment).Bool("tls", cfg.TLS()).Msg("server listening")
			if httpServer.TLSConfig != nil {
				errCh <- httpServer.ListenAndServeTLS("", "")
				return
			}
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
