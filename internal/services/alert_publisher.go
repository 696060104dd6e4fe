package services

//go:generate mockgen -destination=mock_services.go -package=services github.com/NammaLakes/dashboard/internal/services MessageProducer,Pruner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NammaLakes/dashboard/internal/kafka"
	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// HeaderEvent names the lifecycle event of an audit record
const HeaderEvent = "event"

// MessageProducer is the subset of kafka.Producer used for the audit feed
type MessageProducer interface {
	ProduceSync(ctx context.Context, topic string, message *kafka.Message) error
}

// AuditRecord is the value of every alert audit message
type AuditRecord struct {
	Event       string       `json:"event"`
	Alert       models.Alert `json:"alert"`
	PublishedAt time.Time    `json:"published_at"`
}

// KafkaAlertPublisher writes alert lifecycle events to a Kafka topic, keyed
// by alert id so the events of one alert stay ordered
type KafkaAlertPublisher struct {
	producer MessageProducer
	topic    string
	logger   *utils.Logger
	clock    clockwork.Clock
}

// NewKafkaAlertPublisher creates a publisher writing to topic
func NewKafkaAlertPublisher(producer MessageProducer, topic string, logger *utils.Logger, clock clockwork.Clock) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.Named("alert_publisher"),
		clock:    clock,
	}
}

// PublishAlert implements store.AlertPublisher
func (p *KafkaAlertPublisher) PublishAlert(ctx context.Context, event string, alert models.Alert) error {
	now := p.clock.Now()

	message := &kafka.Message{
		Key: alert.ID,
		Value: AuditRecord{
			Event:       event,
			Alert:       alert,
			PublishedAt: now,
		},
		Timestamp: now,
		Headers:   map[string]string{HeaderEvent: event},
	}

	if err := p.producer.ProduceSync(ctx, p.topic, message); err != nil {
		return fmt.Errorf("publish %s for alert %s: %w", event, alert.ID, err)
	}

	p.logger.Debug("Published alert event",
		zap.String("event", event),
		zap.String("alert_id", alert.ID),
		zap.String("topic", p.topic),
	)
	return nil
}

// DecodeAuditRecord parses the value of an audit message
func DecodeAuditRecord(value []byte) (AuditRecord, error) {
	var record AuditRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return AuditRecord{}, fmt.Errorf("decode audit record: %w", utils.ErrParse)
	}
	if record.Event == "" || record.Alert.ID == "" {
		return AuditRecord{}, fmt.Errorf("audit record without event or alert id: %w", utils.ErrParse)
	}
	return record, nil
}
