package sensorapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/utils"
)

const alertEventSchema = "alert_event"

var eventValidator = sync.OnceValues(func() (*utils.JSONSchemaValidator, error) {
	schema, err := utils.NewJSONSchemaBuilder().
		SetTitle("Alert stream event").
		AllowAdditionalProperties(true).
		AddStringProperty("message", true).
		AddNumberProperty("timestamp", false).
		AddStringProperty("datetime", false).
		AddStringProperty("node_id", false).
		Build()
	if err != nil {
		return nil, err
	}

	v := utils.NewJSONSchemaValidator()
	if err := v.LoadSchema(alertEventSchema, schema); err != nil {
		return nil, err
	}
	return v, nil
})

// DecodeAlertEvent parses one stream message. Anything that is not a
// well-formed event is wrapped as a raw-text event stamped with now; the
// returned error then wraps utils.ErrParse but the event is still usable.
func DecodeAlertEvent(data []byte, now time.Time) (models.AlertEvent, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '{':
			event, err := decodeObject(trimmed)
			if err == nil {
				if event.Timestamp == 0 {
					event.Timestamp = epochSeconds(now)
				}
				return event, nil
			}
			return rawEvent(data, now), fmt.Errorf("%w: %w", utils.ErrParse, err)
		case '"':
			var message string
			if err := json.Unmarshal(trimmed, &message); err == nil && message != "" {
				return models.AlertEvent{
					Message:   message,
					Timestamp: epochSeconds(now),
					Datetime:  isoTime(now),
				}, nil
			}
		}
	}

	return rawEvent(data, now), fmt.Errorf("%w: not a structured alert event", utils.ErrParse)
}

func decodeObject(data []byte) (models.AlertEvent, error) {
	var event models.AlertEvent

	validator, err := eventValidator()
	if err != nil {
		return event, err
	}
	if err := validator.ValidateBytes(alertEventSchema, data); err != nil {
		return event, err
	}

	if err := json.Unmarshal(data, &event); err != nil {
		return event, err
	}
	if event.Message == "" {
		return event, fmt.Errorf("empty message")
	}
	return event, nil
}

func rawEvent(data []byte, now time.Time) models.AlertEvent {
	return models.AlertEvent{
		Message:   string(data),
		Timestamp: epochSeconds(now),
		Datetime:  isoTime(now),
	}
}

// epochSeconds returns t as fractional epoch seconds with millisecond precision
func epochSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}

func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
