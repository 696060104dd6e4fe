package persistence

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NammaLakes/dashboard/internal/db/repository"
	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/utils"
	"go.uber.org/zap"
)

// Cache keys of the dashboard state
const (
	KeyNodes          = "lakewatcher-sensor-nodes"
	KeyActiveAlerts   = "lakewatcher-active-alerts"
	KeyArchivedAlerts = "lakewatcher-archived-alerts"
)

// Adapter reads and writes the cached state blobs. Reads never fail: missing
// or corrupt data reads as empty. Writes are best-effort.
type Adapter struct {
	store  BlobStore
	logger *utils.Logger
}

// NewAdapter creates an Adapter over store
func NewAdapter(store BlobStore, logger *utils.Logger) *Adapter {
	return &Adapter{
		store:  store,
		logger: logger.Named("persistence"),
	}
}

// Load returns the blob under key and whether one was found
func (a *Adapter) Load(key string) ([]byte, bool) {
	blob, err := a.store.Get(key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			a.logger.Warn("Failed to read cached state",
				zap.String("key", key),
				zap.Error(fmt.Errorf("%w: %w", utils.ErrPersistence, err)),
			)
		}
		return nil, false
	}
	return blob, len(blob) > 0
}

// Save writes blob under key. Failures are logged and returned for callers that care.
func (a *Adapter) Save(key string, blob []byte) error {
	if err := a.store.Put(key, blob); err != nil {
		err = fmt.Errorf("%w: save %s: %w", utils.ErrPersistence, key, err)
		a.logger.Warn("Failed to write cached state", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// LoadNodes reads the node snapshot cache
func (a *Adapter) LoadNodes() map[string]models.Node {
	nodes := make(map[string]models.Node)
	if !a.loadJSON(KeyNodes, &nodes) {
		return make(map[string]models.Node)
	}

	for id, node := range nodes {
		if node.AlertIDs == nil {
			node.AlertIDs = []string{}
		}
		if node.NodeID == "" {
			node.NodeID = id
		}
		nodes[id] = node
	}
	return nodes
}

// SaveNodes writes the node snapshot cache
func (a *Adapter) SaveNodes(nodes map[string]models.Node) error {
	return a.saveJSON(KeyNodes, nodes)
}

// LoadAlerts reads one of the alert list caches
func (a *Adapter) LoadAlerts(key string) []models.Alert {
	var alerts []models.Alert
	if !a.loadJSON(key, &alerts) || alerts == nil {
		return []models.Alert{}
	}
	return alerts
}

// SaveAlerts writes one of the alert list caches
func (a *Adapter) SaveAlerts(key string, alerts []models.Alert) error {
	if alerts == nil {
		alerts = []models.Alert{}
	}
	return a.saveJSON(key, alerts)
}

func (a *Adapter) loadJSON(key string, v interface{}) bool {
	blob, ok := a.Load(key)
	if !ok {
		return false
	}

	if err := json.Unmarshal(blob, v); err != nil {
		a.logger.Warn("Discarding corrupt cached state",
			zap.String("key", key),
			zap.Error(fmt.Errorf("%w: %w", utils.ErrPersistence, err)),
		)
		return false
	}
	return true
}

func (a *Adapter) saveJSON(key string, v interface{}) error {
	blob, err := json.Marshal(v)
	if err != nil {
		err = fmt.Errorf("%w: encode %s: %w", utils.ErrPersistence, key, err)
		a.logger.Warn("Failed to encode cached state", zap.String("key", key), zap.Error(err))
		return err
	}
	return a.Save(key, blob)
}
