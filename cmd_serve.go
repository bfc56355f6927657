package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpLayer "loan-qualifier/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the qualification API over HTTP",
	RunE:  runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	rateLimiter := httpLayer.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	defer rateLimiter.Stop()

	handler := httpLayer.NewQualifyHandler(a.service, a.log)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(handler, rateLimiter, a.log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", cfg.Server.Addr).Str("rate_sheet", cfg.RateSheet).Msg("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		a.log.Info().Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		a.log.Error().Err(err).Msg("error during server shutdown")
		return err
	}

	a.log.Info().Msg("Server exited")
	return nil
}
