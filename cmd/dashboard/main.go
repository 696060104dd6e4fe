package main

import (
	"fmt"
	"os"

	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Lake water-quality sensor dashboard",
		Long: `dashboard serves the real-time state of the lake sensor network:
latest node readings, reading history, active and archived alerts.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration directory")

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(streamCommand())
	rootCmd.AddCommand(auditCommand())
	return rootCmd
}

// setup loads the configuration and builds the logger shared by every command
func setup() (*config.Config, *utils.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := utils.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}
	return cfg, logger, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
