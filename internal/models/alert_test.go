package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    Severity
	}{
		{"CRITICAL: sensor offline", SeverityError},
		{"Read error on sensor", SeverityError},
		{"Warning: battery low", SeverityWarning},
		{"Temperature threshold exceeded: 30", SeverityWarning},
		{"pH limit Exceeded", SeverityWarning},
		{"Node scheduled for maintenance", SeverityWarning},
		{"Dissolved oxygen threshold crossed with error", SeverityError},
		{"Node N2 came online", SeverityInfo},
		{"", SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestDeriveAlertID(t *testing.T) {
	tests := []struct {
		name      string
		timestamp float64
		message   string
		want      string
	}{
		{"spaces escaped and truncated", 1000, "Temperature threshold exceeded: 30", "1000-Temperature%20thresh"},
		{"fractional timestamp", 1700000000.5, "ok", "1700000000.5-ok"},
		{"unreserved marks kept", 7, "it's (fine)!*~", "7-it's%20(fine)!*~"},
		{"reserved characters escaped", 1, "a/b?c=d&e", "1-a%2Fb%3Fc%3Dd%26e"},
		{"multibyte", 2, "pH ≥ 9", "2-pH%20%E2%89%A5%209"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveAlertID(tt.timestamp, tt.message))
		})
	}
}

func TestAlert(t *testing.T) {
	t.Run("Should derive the same id with or without a node", func(t *testing.T) {
		a := NewAlert(AlertEvent{Message: "Temperature threshold exceeded: 30", Timestamp: 1000, NodeID: "N1"})
		b := NewAlert(AlertEvent{Message: "Temperature threshold exceeded: 30", Timestamp: 1000})

		assert.Equal(t, a.ID, b.ID)
		assert.Equal(t, SeverityWarning, a.Type)
		assert.False(t, a.Resolved)
		assert.False(t, a.Archived)
		assert.Nil(t, a.ResolvedAt)
	})

	t.Run("Should resolve and clone independently", func(t *testing.T) {
		a := NewAlert(AlertEvent{Message: "x", Timestamp: 1})
		a.Resolve(50)

		clone := a.Clone()
		*a.ResolvedAt = 99

		assert.True(t, clone.Resolved)
		assert.True(t, clone.Archived)
		assert.Equal(t, 50.0, *clone.ResolvedAt)
	})

	t.Run("Should validate severities", func(t *testing.T) {
		assert.True(t, SeverityInfo.Valid())
		assert.False(t, Severity("fatal").Valid())
	})
}
