package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/NammaLakes/dashboard/internal/kafka"
	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/store"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestKafkaAlertPublisher(t *testing.T) {
	t.Run("Should produce a keyed audit record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		producer := NewMockMessageProducer(ctrl)
		clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

		publisher := NewKafkaAlertPublisher(producer, "lakewatch-alerts", utils.NewNopLogger(), clock)
		alert := models.NewAlert(models.AlertEvent{Message: "Temperature threshold exceeded: 30", Timestamp: 1000, NodeID: "N1"})

		var sent *kafka.Message
		producer.EXPECT().ProduceSync(gomock.Any(), "lakewatch-alerts", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, msg *kafka.Message) error {
				sent = msg
				return nil
			})

		require.NoError(t, publisher.PublishAlert(context.Background(), store.EventAlertCreated, alert))

		require.NotNil(t, sent)
		assert.Equal(t, alert.ID, sent.Key)
		assert.Equal(t, clock.Now(), sent.Timestamp)
		assert.Equal(t, map[string]string{HeaderEvent: store.EventAlertCreated}, sent.Headers)

		record, ok := sent.Value.(AuditRecord)
		require.True(t, ok)
		assert.Equal(t, store.EventAlertCreated, record.Event)
		assert.Equal(t, alert, record.Alert)
	})

	t.Run("Should return the producer error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		producer := NewMockMessageProducer(ctrl)
		publisher := NewKafkaAlertPublisher(producer, "alerts", utils.NewNopLogger(), clockwork.NewFakeClock())

		broker := errors.New("broker unavailable")
		producer.EXPECT().ProduceSync(gomock.Any(), "alerts", gomock.Any()).Return(broker)

		err := publisher.PublishAlert(context.Background(), store.EventAlertResolved, models.Alert{ID: "1-x"})
		assert.ErrorIs(t, err, broker)
		assert.Contains(t, err.Error(), "alert.resolved")
	})
}

func TestDecodeAuditRecord(t *testing.T) {
	t.Run("Should decode a produced record", func(t *testing.T) {
		alert := models.NewAlert(models.AlertEvent{Message: "pH low", Timestamp: 12})
		alert.Resolve(15)

		value, err := json.Marshal(AuditRecord{
			Event:       store.EventAlertResolved,
			Alert:       alert,
			PublishedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		record, err := DecodeAuditRecord(value)
		require.NoError(t, err)
		assert.Equal(t, store.EventAlertResolved, record.Event)
		assert.Equal(t, alert.ID, record.Alert.ID)
		require.NotNil(t, record.Alert.ResolvedAt)
		assert.Equal(t, 15.0, *record.Alert.ResolvedAt)

		for _, bad := range []string{`not json`, `{}`, `{"event":"alert.created","alert":{}}`} {
			_, err := DecodeAuditRecord([]byte(bad))
			assert.ErrorIs(t, err, utils.ErrParse, bad)
		}
	})
}
