package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/NammaLakes/dashboard/internal/kafka"
	"github.com/NammaLakes/dashboard/internal/services"
	confluent "github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/spf13/cobra"
)

func auditCommand() *cobra.Command {
	var fromStart bool

	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Tail the alert audit topic",
		Long: `Consume the Kafka topic the dashboard publishes alert lifecycle events to
and print one line per event.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !cfg.Kafka.Enabled {
				return errors.New("kafka is disabled, set kafka.enabled to tail the audit topic")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			consumer, err := kafka.NewConsumer(&cfg.Kafka, logger, fromStart)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			consumer.RegisterHandler(cfg.Kafka.Topic, func(msg *confluent.Message) error {
				record, err := services.DecodeAuditRecord(msg.Value)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintf(out, "%s\t%-14s\t%-7s\t%s\t%s\t%s\n",
					record.PublishedAt.Format(time.RFC3339),
					kafka.Header(msg, services.HeaderEvent),
					record.Alert.Type,
					record.Alert.ID,
					record.Alert.NodeID,
					record.Alert.Message,
				)
				return err
			})

			return consumer.Run(ctx)
		},
	}

	auditCmd.Flags().BoolVar(&fromStart, "from-start", false, "Read the topic from the earliest retained offset")
	return auditCmd
}
