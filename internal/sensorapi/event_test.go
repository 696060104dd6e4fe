package sensorapi

import (
	"testing"
	"time"

	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestDecodeAlertEvent(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 250_000_000, time.UTC)
	nowSeconds := 1709287200.25
	nowISO := "2024-03-01T10:00:00.250Z"

	tests := []struct {
		name      string
		data      string
		want      models.AlertEvent
		wantParse bool
	}{
		{
			name: "structured event",
			data: `{"message":"Temperature threshold exceeded: 30","timestamp":1000,"node_id":"N1"}`,
			want: models.AlertEvent{Message: "Temperature threshold exceeded: 30", Timestamp: 1000, NodeID: "N1"},
		},
		{
			name: "extra fields tolerated",
			data: `{"message":"pH low","timestamp":5,"datetime":"x","severity":"high"}`,
			want: models.AlertEvent{Message: "pH low", Timestamp: 5, Datetime: "x"},
		},
		{
			name: "missing timestamp stamped with receipt time",
			data: `{"message":"Sensor online"}`,
			want: models.AlertEvent{Message: "Sensor online", Timestamp: nowSeconds},
		},
		{
			name: "json string",
			data: `"Maintenance window starts"`,
			want: models.AlertEvent{Message: "Maintenance window starts", Timestamp: nowSeconds, Datetime: nowISO},
		},
		{
			name:      "plain text",
			data:      "Node N4 offline",
			want:      models.AlertEvent{Message: "Node N4 offline", Timestamp: nowSeconds, Datetime: nowISO},
			wantParse: true,
		},
		{
			name:      "object failing schema",
			data:      `{"message":42}`,
			want:      models.AlertEvent{Message: `{"message":42}`, Timestamp: nowSeconds, Datetime: nowISO},
			wantParse: true,
		},
		{
			name:      "truncated json",
			data:      `{"message":"cut`,
			want:      models.AlertEvent{Message: `{"message":"cut`, Timestamp: nowSeconds, Datetime: nowISO},
			wantParse: true,
		},
		{
			name:      "empty frame",
			data:      "",
			want:      models.AlertEvent{Message: "", Timestamp: nowSeconds, Datetime: nowISO},
			wantParse: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAlertEvent([]byte(tt.data), now)
			assert.Equal(t, tt.want, got)
			if tt.wantParse {
				assert.ErrorIs(t, err, utils.ErrParse)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
