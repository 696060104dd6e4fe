package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/sensorapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func streamCommand() *cobra.Command {
	var withNodes bool

	streamCmd := &cobra.Command{
		Use:   "stream",
		Short: "Print alerts from the sensor backend as they arrive",
		Long: `Connect to the monitoring stream and print every alert as one JSON line,
classified and identified the same way the dashboard does it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			givenUp := make(chan error, 1)
			manager := sensorapi.NewManager(&cfg.API, &cfg.Store, logger,
				sensorapi.WithGiveUpHandler(func(err error) {
					select {
					case givenUp <- err:
					default:
					}
				}),
			)

			encoder := json.NewEncoder(os.Stdout)

			if withNodes {
				readings, err := manager.FetchAllNodes(ctx)
				if err != nil {
					return fmt.Errorf("fetch nodes: %w", err)
				}
				for _, reading := range readings {
					if err := encoder.Encode(reading); err != nil {
						return err
					}
				}
			}

			manager.Connect(func(event models.AlertEvent) {
				if err := encoder.Encode(models.NewAlert(event)); err != nil {
					logger.Warn("Failed to print alert", zap.Error(err))
				}
			})
			defer manager.Disconnect()

			select {
			case <-ctx.Done():
				return nil
			case err := <-givenUp:
				return fmt.Errorf("alert stream: %w", err)
			}
		},
	}

	streamCmd.Flags().BoolVar(&withNodes, "nodes", false, "Print the latest reading of every node before streaming")
	return streamCmd
}
