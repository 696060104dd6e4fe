package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Severity classifies an alert
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Valid reports whether s is one of the known severities
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

var (
	errorKeywords   = []string{"critical", "error"}
	warningKeywords = []string{"warning", "exceeded", "maintenance", "threshold"}
)

// Classify derives a severity from the alert message by keyword
func Classify(message string) Severity {
	lower := strings.ToLower(message)
	for _, kw := range errorKeywords {
		if strings.Contains(lower, kw) {
			return SeverityError
		}
	}
	for _, kw := range warningKeywords {
		if strings.Contains(lower, kw) {
			return SeverityWarning
		}
	}
	return SeverityInfo
}

// AlertEvent is an alert as pushed by the monitoring stream
type AlertEvent struct {
	Message   string  `json:"message"`
	Timestamp float64 `json:"timestamp"`
	Datetime  string  `json:"datetime,omitempty"`
	NodeID    string  `json:"node_id,omitempty"`
}

// Alert is an event enriched with identity, severity and lifecycle flags
type Alert struct {
	AlertEvent
	ID         string   `json:"id"`
	Type       Severity `json:"type"`
	Resolved   bool     `json:"resolved"`
	Archived   bool     `json:"archived"`
	ResolvedAt *float64 `json:"resolvedAt,omitempty"`
}

// NewAlert builds an active alert from a stream event
func NewAlert(event AlertEvent) Alert {
	return Alert{
		AlertEvent: event,
		ID:         DeriveAlertID(event.Timestamp, event.Message),
		Type:       Classify(event.Message),
	}
}

// Clone returns a copy that shares no pointers with a
func (a Alert) Clone() Alert {
	out := a
	if a.ResolvedAt != nil {
		at := *a.ResolvedAt
		out.ResolvedAt = &at
	}
	return out
}

// Resolve marks the alert resolved and archived at the given epoch second
func (a *Alert) Resolve(at float64) {
	a.Resolved = true
	a.Archived = true
	a.ResolvedAt = &at
}

const alertIDMessageLen = 20

// DeriveAlertID returns the identity of an alert: the timestamp joined with
// the first 20 characters of the component-escaped message.
func DeriveAlertID(timestamp float64, message string) string {
	escaped := escapeComponent(message)
	if len(escaped) > alertIDMessageLen {
		escaped = escaped[:alertIDMessageLen]
	}
	return strconv.FormatFloat(timestamp, 'f', -1, 64) + "-" + escaped
}

// componentUnescaper restores the characters that URI component escaping
// leaves alone but query escaping encodes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
