package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

const readTimeout = 100 * time.Millisecond

// MessageHandler is a function that processes a Kafka message
type MessageHandler func(msg *kafka.Message) error

// Consumer reads messages from Kafka topics and hands them to the handlers
// registered for each topic
type Consumer struct {
	consumer *kafka.Consumer
	logger   *utils.Logger
	config   *config.KafkaConfig
	handlers map[string][]MessageHandler
}

// NewConsumer creates a new Kafka consumer. When fromStart is set a new
// consumer group starts at the earliest retained offset.
func NewConsumer(cfg *config.KafkaConfig, logger *utils.Logger, fromStart bool) (*Consumer, error) {
	offsetReset := "latest"
	if fromStart {
		offsetReset = "earliest"
	}

	kafkaConfig, err := newConfigMap(cfg, kafka.ConfigMap{
		"group.id":                cfg.ConsumerGroup,
		"auto.offset.reset":       offsetReset,
		"enable.auto.commit":      true,
		"auto.commit.interval.ms": 5000,
	})
	if err != nil {
		return nil, err
	}

	consumer, err := kafka.NewConsumer(kafkaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	return newConsumer(consumer, cfg, logger), nil
}

func newConsumer(consumer *kafka.Consumer, cfg *config.KafkaConfig, logger *utils.Logger) *Consumer {
	return &Consumer{
		consumer: consumer,
		logger:   logger.Named("kafka_consumer"),
		config:   cfg,
		handlers: make(map[string][]MessageHandler),
	}
}

// RegisterHandler registers a message handler for a specific topic
func (c *Consumer) RegisterHandler(topic string, handler MessageHandler) {
	c.handlers[topic] = append(c.handlers[topic], handler)
	c.logger.Info("Registered handler for topic", zap.String("topic", topic))
}

// Run subscribes to every topic with a handler and consumes until ctx ends.
// The underlying consumer is closed on return.
func (c *Consumer) Run(ctx context.Context) error {
	topics := make([]string, 0, len(c.handlers))
	for topic := range c.handlers {
		topics = append(topics, topic)
	}
	if len(topics) == 0 {
		return fmt.Errorf("no topics registered")
	}

	if err := c.consumer.SubscribeTopics(topics, nil); err != nil {
		return fmt.Errorf("failed to subscribe to topics: %w", err)
	}
	c.logger.Info("Subscribed to topics", zap.Strings("topics", topics))

	defer func() {
		if err := c.consumer.Close(); err != nil {
			c.logger.Warn("Failed to close consumer", zap.Error(err))
		}
		c.logger.Info("Kafka consumer stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msg, err := c.consumer.ReadMessage(readTimeout)
		if err != nil {
			var kafkaErr kafka.Error
			if errors.As(err, &kafkaErr) && kafkaErr.Code() == kafka.ErrTimedOut {
				continue
			}
			c.logger.Error("Error reading message from Kafka", zap.Error(err))
			continue
		}

		c.processMessage(msg)
	}
}

// processMessage processes a Kafka message using registered handlers
func (c *Consumer) processMessage(msg *kafka.Message) {
	if msg == nil || msg.TopicPartition.Topic == nil {
		return
	}

	topic := *msg.TopicPartition.Topic
	handlers := c.handlers[topic]
	if len(handlers) == 0 {
		c.logger.Warn("No handlers registered for topic", zap.String("topic", topic))
		return
	}

	c.logger.Debug("Processing message",
		zap.String("topic", topic),
		zap.Int32("partition", msg.TopicPartition.Partition),
		zap.Int64("offset", int64(msg.TopicPartition.Offset)),
	)

	for i, handler := range handlers {
		if err := handler(msg); err != nil {
			c.logger.Error("Handler failed to process message",
				zap.String("topic", topic),
				zap.Int("handler_index", i),
				zap.Error(err),
			)
		}
	}
}

// Header returns the value of the named header, or "" when absent
func Header(msg *kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
