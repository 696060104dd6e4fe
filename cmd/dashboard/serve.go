package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/NammaLakes/dashboard/internal/api"
	"github.com/NammaLakes/dashboard/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Lake Monitoring Dashboard API
// @version 1.0
// @description Real-time state of the lake sensor network: node readings, reading history, active and archived alerts.

// @host localhost:8080
// @BasePath /
// @schemes http https

func serveCommand() *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		Long: `Start the dashboard API server. The server polls the sensor backend,
follows the alert stream and pushes every change to connected browsers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serviceProvider := services.NewServiceProvider(logger, cfg)
			if err := serviceProvider.Initialize(ctx); err != nil {
				return fmt.Errorf("initialize services: %w", err)
			}
			logger.Info("Service provider initialized")

			router := api.NewRouter(cfg, logger, serviceProvider)
			router.SetupRoutes()

			serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			server := &http.Server{
				Addr:         serverAddr,
				Handler:      router.GetEngine(),
				ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
				WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
				IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
			}

			serveErr := make(chan error, 1)
			go func() {
				logger.Info("Starting server", zap.String("address", serverAddr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case <-ctx.Done():
				logger.Info("Received signal, initiating shutdown")
			case err := <-serveErr:
				logger.Error("Server error", zap.Error(err))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("Error during server shutdown", zap.Error(err))
			}
			if err := serviceProvider.Shutdown(); err != nil {
				logger.Error("Error during service shutdown", zap.Error(err))
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to run the HTTP server on (overrides server.port)")
	return serveCmd
}
