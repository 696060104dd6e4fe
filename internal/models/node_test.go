package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNode(t *testing.T) {
	t.Run("Should derive status from maintenance and alerts", func(t *testing.T) {
		assert.Equal(t, StatusActive, NodeStatus(Node{}))
		assert.Equal(t, StatusMaintenance, NodeStatus(Node{NodeReading: NodeReading{MaintenanceRequired: 1}}))
		assert.Equal(t, StatusAlert, NodeStatus(Node{NodeReading: NodeReading{MaintenanceRequired: 1}, HasAlert: true}))
	})

	t.Run("Should compare samples by time and readings", func(t *testing.T) {
		r := NodeReading{NodeID: "N1", Timestamp: 100, Temperature: 22, PH: 7, DissolvedOxygen: 8, Latitude: 12.9}
		s := r.Sample()

		assert.Equal(t, "N1", s.NodeID)
		assert.True(t, s.SameAs(r.Sample()))

		moved := r
		moved.Latitude = 13
		assert.True(t, s.SameAs(moved.Sample()), "location is not part of a sample")

		warmer := r
		warmer.Temperature = 23.5
		assert.False(t, s.SameAs(warmer.Sample()))

		later := r
		later.Timestamp = 105
		assert.False(t, s.SameAs(later.Sample()))
	})

	t.Run("Should clone alert ids", func(t *testing.T) {
		n := Node{HasAlert: true, AlertIDs: []string{"a"}}
		c := n.Clone()
		n.AlertIDs[0] = "b"

		assert.Equal(t, []string{"a"}, c.AlertIDs)
		assert.NotNil(t, Node{}.Clone().AlertIDs)
	})
}

func TestAlertNotification(t *testing.T) {
	t.Run("Should title and style by node and severity", func(t *testing.T) {
		now := time.Unix(1000, 0)

		n := AlertNotification(NewAlert(AlertEvent{Message: "Critical failure", Timestamp: 1, NodeID: "N3"}), now)
		assert.Equal(t, "New Alert from N3", n.Title)
		assert.Equal(t, VariantDestructive, n.Variant)
		assert.False(t, n.Persistent)
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, now, n.CreatedAt)

		n = AlertNotification(NewAlert(AlertEvent{Message: "hello", Timestamp: 1}), now)
		assert.Equal(t, "New Alert", n.Title)
		assert.Equal(t, VariantDefault, n.Variant)
	})
}
