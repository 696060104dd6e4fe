package sensorapi

import (
	"context"

	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/utils"
)

// Manager is a composite service that combines the REST node source and the
// alert stream of the sensor backend
type Manager struct {
	logger     *utils.Logger
	httpClient *Client
	stream     *AlertStream
}

// NewManager creates a new Manager for the configured sensor backend
func NewManager(apiCfg *config.APIConfig, storeCfg *config.StoreConfig, logger *utils.Logger, opts ...StreamOption) *Manager {
	streamOpts := append([]StreamOption{
		WithDialer(NewWebsocketDialer(apiCfg.HandshakeTimeout, apiCfg.APIToken)),
	}, opts...)

	return &Manager{
		logger:     logger.Named("sensor_manager"),
		httpClient: NewClient(apiCfg, logger),
		stream: NewAlertStream(StreamConfig{
			URL:            apiCfg.StreamURL,
			MaxAttempts:    storeCfg.MaxReconnectAttempts,
			InitialBackoff: storeCfg.InitialBackoff,
			MaxBackoff:     storeCfg.MaxBackoff,
		}, logger, streamOpts...),
	}
}

// FetchAllNodes returns the latest reading of every node
func (m *Manager) FetchAllNodes(ctx context.Context) ([]models.NodeReading, error) {
	return m.httpClient.FetchAllNodes(ctx)
}

// FetchNodeHistory returns the recorded readings of one node
func (m *Manager) FetchNodeHistory(ctx context.Context, nodeID string) ([]models.HistoricalSample, error) {
	return m.httpClient.FetchNodeHistory(ctx, nodeID)
}

// Connect opens the alert stream and delivers events to handler
func (m *Manager) Connect(handler func(models.AlertEvent)) {
	m.stream.Connect(handler)
}

// Disconnect closes the alert stream
func (m *Manager) Disconnect() {
	m.stream.Disconnect()
}

// StreamState returns the alert stream connection state
func (m *Manager) StreamState() State {
	return m.stream.State()
}

// StreamErr returns why the alert stream gave up, or nil
func (m *Manager) StreamErr() error {
	return m.stream.Err()
}
