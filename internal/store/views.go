package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/NammaLakes/dashboard/internal/models"
	"github.com/NammaLakes/dashboard/internal/utils"
	"go.uber.org/zap"
)

// Snapshot is a consistent read-only copy of every view
type Snapshot struct {
	Version        uint64                               `json:"version"`
	TakenAt        time.Time                            `json:"taken_at"`
	Nodes          map[string]models.Node               `json:"nodes"`
	History        map[string][]models.HistoricalSample `json:"history"`
	ActiveAlerts   []models.Alert                       `json:"active_alerts"`
	ArchivedAlerts []models.Alert                       `json:"archived_alerts"`
}

// Summary aggregates the fleet for the metric cards
type Summary struct {
	TotalNodes             int                     `json:"total_nodes"`
	NodesByStatus          map[models.Status]int   `json:"nodes_by_status"`
	AverageTemperature     float64                 `json:"average_temperature"`
	AveragePH              float64                 `json:"average_ph"`
	AverageDissolvedOxygen float64                 `json:"average_dissolved_oxygen"`
	ActiveAlerts           int                     `json:"active_alerts"`
	ActiveBySeverity       map[models.Severity]int `json:"active_by_severity"`
	ArchivedAlerts         int                     `json:"archived_alerts"`
}

// Snapshot returns a copy of every view
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	nodes := make(map[string]models.Node, len(s.nodes))
	for id, node := range s.nodes {
		nodes[id] = node.Clone()
	}

	history := make(map[string][]models.HistoricalSample, len(s.history))
	for id, ring := range s.history {
		history[id] = ring.Samples()
	}

	return Snapshot{
		Version:        s.version,
		TakenAt:        s.clock.Now(),
		Nodes:          nodes,
		History:        history,
		ActiveAlerts:   cloneAlerts(s.active),
		ArchivedAlerts: cloneAlerts(s.archived),
	}
}

// snapshotIfWatchedLocked skips the copy when nobody is subscribed
func (s *Store) snapshotIfWatchedLocked() *Snapshot {
	if s.subsCount.Load() == 0 {
		return nil
	}
	snap := s.snapshotLocked()
	return &snap
}

// Version returns a counter that increases with every mutation
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Nodes returns the latest reading of every node
func (s *Store) Nodes() []models.Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := make([]models.Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		nodes = append(nodes, node.Clone())
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].NodeID < nodes[j].NodeID })
	return nodes
}

// Node returns one node
func (s *Store) Node(id string) (models.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[id]
	if !ok {
		return models.Node{}, false
	}
	return node.Clone(), true
}

// History returns the retained samples of one node, oldest first
func (s *Store) History(id string) []models.HistoricalSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	ring, ok := s.history[id]
	if !ok {
		return []models.HistoricalSample{}
	}
	return ring.Samples()
}

// ActiveAlerts returns the unresolved alerts, newest first
func (s *Store) ActiveAlerts() []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAlerts(s.active)
}

// ArchivedAlerts returns the resolved alerts, most recently resolved first
func (s *Store) ArchivedAlerts() []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAlerts(s.archived)
}

// NodeHistory returns the retained samples of a node. When nothing has been
// retained yet the history is seeded from the backend.
func (s *Store) NodeHistory(ctx context.Context, id string) ([]models.HistoricalSample, error) {
	s.mu.Lock()
	if ring, ok := s.history[id]; ok && ring.Len() > 0 {
		samples := ring.Samples()
		s.mu.Unlock()
		return samples, nil
	}
	s.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	fetched, err := s.source.FetchNodeHistory(fetchCtx, id)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("Failed to fetch node history", zap.String("node_id", id), zap.Error(err))
			s.notify(models.NewNotification("Error",
				fmt.Sprintf("Failed to fetch data for sensor %s. Please try again.", id),
				models.VariantDestructive, false, s.clock.Now()))
		}
		return nil, fmt.Errorf("node history %s: %w", id, err)
	}
	sort.SliceStable(fetched, func(i, j int) bool { return fetched[i].Timestamp < fetched[j].Timestamp })

	s.mu.Lock()
	ring := s.ringLocked(id)
	seeded := false
	if ring.Len() == 0 {
		for _, sample := range fetched {
			sample.NodeID = id
			if ring.Append(sample) {
				seeded = true
			}
		}
	}
	samples := ring.Samples()
	var snap *Snapshot
	if seeded {
		s.version++
		snap = s.snapshotIfWatchedLocked()
	}
	s.mu.Unlock()

	s.broadcast(snap)
	return samples, nil
}

// Summary returns fleet averages and counts
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{
		TotalNodes: len(s.nodes),
		NodesByStatus: map[models.Status]int{
			models.StatusActive:      0,
			models.StatusMaintenance: 0,
			models.StatusAlert:       0,
		},
		ActiveAlerts: len(s.active),
		ActiveBySeverity: map[models.Severity]int{
			models.SeverityError:   0,
			models.SeverityWarning: 0,
			models.SeverityInfo:    0,
		},
		ArchivedAlerts: len(s.archived),
	}

	var temperature, ph, oxygen float64
	for _, node := range s.nodes {
		summary.NodesByStatus[models.NodeStatus(node)]++
		temperature += node.Temperature
		ph += node.PH
		oxygen += node.DissolvedOxygen
	}
	if n := float64(len(s.nodes)); n > 0 {
		summary.AverageTemperature = temperature / n
		summary.AveragePH = ph / n
		summary.AverageDissolvedOxygen = oxygen / n
	}

	for _, alert := range s.active {
		summary.ActiveBySeverity[alert.Type]++
	}

	return summary
}

// FindAlert looks an alert up in either list
func (s *Store) FindAlert(id string) (models.Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := indexOf(s.active, id); idx >= 0 {
		return s.active[idx].Clone(), true
	}
	if idx := indexOf(s.archived, id); idx >= 0 {
		return s.archived[idx].Clone(), true
	}
	return models.Alert{}, false
}

// FilterAlerts returns one alert list filtered by severity. state is
// "active" or "archived".
func (s *Store) FilterAlerts(state string, severity models.Severity) ([]models.Alert, error) {
	var alerts []models.Alert
	switch state {
	case "", "active":
		alerts = s.ActiveAlerts()
	case "archived":
		alerts = s.ArchivedAlerts()
	default:
		return nil, fmt.Errorf("unknown alert state %q: %w", state, utils.ErrBadRequest)
	}

	if severity == "" {
		return alerts, nil
	}

	filtered := make([]models.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if alert.Type == severity {
			filtered = append(filtered, alert)
		}
	}
	return filtered, nil
}
