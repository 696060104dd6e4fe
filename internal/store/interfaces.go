package store

import (
	"context"

	"github.com/NammaLakes/dashboard/internal/models"
)

//go:generate mockgen -destination=mock_store.go -package=store github.com/NammaLakes/dashboard/internal/store NodeSource,AlertStream,Notifier,AlertPublisher

// NodeSource fetches node readings from the sensor backend. Implementations
// do not retry; the store decides what a failure means.
type NodeSource interface {
	FetchAllNodes(ctx context.Context) ([]models.NodeReading, error)
	FetchNodeHistory(ctx context.Context, nodeID string) ([]models.HistoricalSample, error)
}

// AlertStream pushes alert events to a single registered handler
type AlertStream interface {
	Connect(handler func(models.AlertEvent))
	Disconnect()
}

// Notifier shows user-visible notifications
type Notifier interface {
	Notify(notification models.Notification)
}

// AlertPublisher forwards alert lifecycle events to an audit feed
type AlertPublisher interface {
	PublishAlert(ctx context.Context, event string, alert models.Alert) error
}

// Alert lifecycle events passed to AlertPublisher
const (
	EventAlertCreated  = "alert.created"
	EventAlertResolved = "alert.resolved"
)
