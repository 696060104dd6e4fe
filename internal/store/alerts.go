package store

import (
	"slices"
	"time"

	"github.com/NammaLakes/dashboard/internal/models"
	"go.uber.org/zap"
)

// IngestAlert merges one pushed alert event. Events whose derived id is
// already known, active or archived, are discarded.
func (s *Store) IngestAlert(event models.AlertEvent) {
	alert := models.NewAlert(event)
	now := s.clock.Now()

	s.mu.Lock()

	if indexOf(s.active, alert.ID) >= 0 || indexOf(s.archived, alert.ID) >= 0 {
		s.mu.Unlock()
		s.logger.Debug("Discarding duplicate alert", zap.String("alert_id", alert.ID))
		return
	}

	s.active = append([]models.Alert{alert}, s.active...)
	s.expireLocked(now)
	s.saveAlertsLocked()

	if alert.NodeID != "" {
		if node, ok := s.nodes[alert.NodeID]; ok {
			node.HasAlert = true
			if !slices.Contains(node.AlertIDs, alert.ID) {
				node.AlertIDs = append(slices.Clone(node.AlertIDs), alert.ID)
			}
			s.nodes[alert.NodeID] = node
			s.saveNodesLocked()
		}
	}

	s.version++
	snap := s.snapshotIfWatchedLocked()
	s.mu.Unlock()

	s.logger.Info("Alert received",
		zap.String("alert_id", alert.ID),
		zap.String("type", string(alert.Type)),
		zap.String("node_id", alert.NodeID),
	)

	s.notify(models.AlertNotification(alert, now))
	s.publish(EventAlertCreated, alert)
	s.broadcast(snap)
}

// ResolveAlert moves an active alert to the head of the archived list and
// updates the referenced node. It returns the archived alert, or false
// when no active alert has that id.
func (s *Store) ResolveAlert(id string) (models.Alert, bool) {
	now := s.clock.Now()

	s.mu.Lock()

	idx := indexOf(s.active, id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Alert{}, false
	}

	alert := s.active[idx]
	s.active = slices.Delete(slices.Clone(s.active), idx, idx+1)
	alert.Resolve(epochSeconds(now))
	s.archived = append([]models.Alert{alert}, s.archived...)
	s.expireLocked(now)
	s.saveAlertsLocked()

	if alert.NodeID != "" {
		s.relinkNodeLocked(alert.NodeID)
		s.saveNodesLocked()
	}

	s.version++
	snap := s.snapshotIfWatchedLocked()
	resolved := alert.Clone()
	s.mu.Unlock()

	s.logger.Info("Alert resolved", zap.String("alert_id", id))

	s.publish(EventAlertResolved, resolved)
	s.broadcast(snap)
	return resolved, true
}

// ResolveAll resolves every active alert of the given severity, or every
// active alert when severity is empty. It returns the resolved alerts.
func (s *Store) ResolveAll(severity models.Severity) []models.Alert {
	now := s.clock.Now()
	resolvedAt := epochSeconds(now)

	s.mu.Lock()

	var resolved []models.Alert
	remaining := make([]models.Alert, 0, len(s.active))
	for _, alert := range s.active {
		if severity != "" && alert.Type != severity {
			remaining = append(remaining, alert)
			continue
		}
		alert.Resolve(resolvedAt)
		resolved = append(resolved, alert)
	}

	if len(resolved) == 0 {
		s.mu.Unlock()
		return []models.Alert{}
	}

	s.active = remaining
	s.archived = append(resolved, s.archived...)
	s.expireLocked(now)
	s.saveAlertsLocked()

	touched := false
	for _, alert := range resolved {
		if alert.NodeID != "" && s.relinkNodeLocked(alert.NodeID) {
			touched = true
		}
	}
	if touched {
		s.saveNodesLocked()
	}

	s.version++
	snap := s.snapshotIfWatchedLocked()
	out := cloneAlerts(resolved)
	s.mu.Unlock()

	s.logger.Info("Alerts resolved",
		zap.Int("count", len(out)),
		zap.String("type", string(severity)),
	)

	for _, alert := range out {
		s.publish(EventAlertResolved, alert)
	}
	s.broadcast(snap)
	return out
}

// DismissArchived deletes one archived alert
func (s *Store) DismissArchived(id string) bool {
	s.mu.Lock()

	idx := indexOf(s.archived, id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	s.archived = slices.Delete(slices.Clone(s.archived), idx, idx+1)
	s.expireLocked(s.clock.Now())
	s.saveAlertsLocked()

	s.version++
	snap := s.snapshotIfWatchedLocked()
	s.mu.Unlock()

	s.broadcast(snap)
	return true
}

// ClearArchived deletes every archived alert and returns how many there were
func (s *Store) ClearArchived() int {
	s.mu.Lock()

	count := len(s.archived)
	if count == 0 {
		s.mu.Unlock()
		return 0
	}

	s.archived = []models.Alert{}
	s.saveAlertsLocked()

	s.version++
	snap := s.snapshotIfWatchedLocked()
	s.mu.Unlock()

	s.broadcast(snap)
	return count
}

// PruneArchived drops archived alerts past the retention window and
// returns how many were dropped
func (s *Store) PruneArchived() int {
	s.mu.Lock()

	removed := s.expireLocked(s.clock.Now())
	if removed == 0 {
		s.mu.Unlock()
		return 0
	}
	s.saveAlertsLocked()

	s.version++
	snap := s.snapshotIfWatchedLocked()
	s.mu.Unlock()

	s.logger.Info("Pruned archived alerts", zap.Int("count", removed))
	s.broadcast(snap)
	return removed
}

// expireLocked drops archived alerts resolved at least ArchiveRetention ago.
// Alerts without a resolution time are kept.
func (s *Store) expireLocked(now time.Time) int {
	cutoff := epochSeconds(now) - s.cfg.ArchiveRetention.Seconds()

	kept := make([]models.Alert, 0, len(s.archived))
	for _, alert := range s.archived {
		if alert.ResolvedAt != nil && *alert.ResolvedAt <= cutoff {
			continue
		}
		kept = append(kept, alert)
	}

	removed := len(s.archived) - len(kept)
	if removed > 0 {
		s.archived = kept
	}
	return removed
}

// relinkNodeLocked recomputes a node's alert linkage from the active list
// and reports whether it changed
func (s *Store) relinkNodeLocked(nodeID string) bool {
	node, ok := s.nodes[nodeID]
	if !ok {
		return false
	}

	ids := s.activeIDsForLocked(nodeID)
	changed := node.HasAlert != (len(ids) > 0) || !slices.Equal(node.AlertIDs, ids) || node.AlertIDs == nil

	node.HasAlert = len(ids) > 0
	node.AlertIDs = ids
	s.nodes[nodeID] = node
	return changed
}

// activeIDsForLocked returns the ids of active alerts on a node, oldest first
func (s *Store) activeIDsForLocked(nodeID string) []string {
	ids := []string{}
	for i := len(s.active) - 1; i >= 0; i-- {
		if s.active[i].NodeID == nodeID {
			ids = append(ids, s.active[i].ID)
		}
	}
	return ids
}

// sanitizeAlerts repairs cached alerts: ids and severities are derived
// when missing, lifecycle flags match the list, duplicates and ids listed
// in exclude are dropped.
func sanitizeAlerts(alerts []models.Alert, archived bool, exclude map[string]struct{}) []models.Alert {
	seen := make(map[string]struct{}, len(alerts))
	out := make([]models.Alert, 0, len(alerts))

	for _, alert := range alerts {
		if alert.ID == "" {
			alert.ID = models.DeriveAlertID(alert.Timestamp, alert.Message)
		}
		if !alert.Type.Valid() {
			alert.Type = models.Classify(alert.Message)
		}
		if _, dup := seen[alert.ID]; dup {
			continue
		}
		if _, skip := exclude[alert.ID]; skip {
			continue
		}
		seen[alert.ID] = struct{}{}

		alert.Resolved = archived
		alert.Archived = archived
		if !archived {
			alert.ResolvedAt = nil
		}
		out = append(out, alert)
	}
	return out
}

func alertIDs(alerts []models.Alert) map[string]struct{} {
	ids := make(map[string]struct{}, len(alerts))
	for _, alert := range alerts {
		ids[alert.ID] = struct{}{}
	}
	return ids
}

func indexOf(alerts []models.Alert, id string) int {
	return slices.IndexFunc(alerts, func(a models.Alert) bool { return a.ID == id })
}

func cloneAlerts(alerts []models.Alert) []models.Alert {
	out := make([]models.Alert, len(alerts))
	for i, alert := range alerts {
		out[i] = alert.Clone()
	}
	return out
}

// epochSeconds returns t as fractional epoch seconds with millisecond precision
func epochSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}
