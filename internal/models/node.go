package models

// NodeReading is the latest telemetry reported by one sensor node
type NodeReading struct {
	NodeID              string  `json:"node_id"`
	Timestamp           float64 `json:"timestamp"`
	Datetime            string  `json:"datetime,omitempty"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	Temperature         float64 `json:"temperature"`
	PH                  float64 `json:"ph"`
	DissolvedOxygen     float64 `json:"dissolved_oxygen"`
	MaintenanceRequired int     `json:"maintenance_required"`
}

// NeedsMaintenance reports whether the node raised its maintenance flag
func (r NodeReading) NeedsMaintenance() bool {
	return r.MaintenanceRequired != 0
}

// Sample converts the reading into a historical sample
func (r NodeReading) Sample() HistoricalSample {
	return HistoricalSample{
		NodeID:          r.NodeID,
		Timestamp:       r.Timestamp,
		Datetime:        r.Datetime,
		Temperature:     r.Temperature,
		PH:              r.PH,
		DissolvedOxygen: r.DissolvedOxygen,
	}
}

// Node is a reading augmented with its alert cross-reference
type Node struct {
	NodeReading
	HasAlert bool     `json:"hasAlert"`
	AlertIDs []string `json:"alertIds"`
}

// Clone returns a deep copy of the node
func (n Node) Clone() Node {
	out := n
	out.AlertIDs = append(make([]string, 0, len(n.AlertIDs)), n.AlertIDs...)
	return out
}

// HistoricalSample is one node's reading at one point in time
type HistoricalSample struct {
	NodeID          string  `json:"node_id"`
	Timestamp       float64 `json:"timestamp"`
	Datetime        string  `json:"datetime,omitempty"`
	Temperature     float64 `json:"temperature"`
	PH              float64 `json:"ph"`
	DissolvedOxygen float64 `json:"dissolved_oxygen"`
}

// SameAs reports whether two samples carry the same timestamp and metrics
func (s HistoricalSample) SameAs(other HistoricalSample) bool {
	return s.Timestamp == other.Timestamp &&
		s.Temperature == other.Temperature &&
		s.PH == other.PH &&
		s.DissolvedOxygen == other.DissolvedOxygen
}

// Status is the display state of a node
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusAlert       Status = "alert"
)

// NodeStatus derives the display state: open alerts win over the maintenance flag
func NodeStatus(n Node) Status {
	switch {
	case n.HasAlert:
		return StatusAlert
	case n.NeedsMaintenance():
		return StatusMaintenance
	default:
		return StatusActive
	}
}
