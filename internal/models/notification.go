package models

import (
	"time"

	"github.com/google/uuid"
)

// Variant selects how a notification is rendered
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a user-visible toast
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	Persistent  bool      `json:"persistent"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewNotification creates a notification stamped with a fresh id
func NewNotification(title, description string, variant Variant, persistent bool, now time.Time) Notification {
	return Notification{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Variant:     variant,
		Persistent:  persistent,
		CreatedAt:   now,
	}
}

// AlertNotification builds the toast shown for a newly accepted alert
func AlertNotification(alert Alert, now time.Time) Notification {
	title := "New Alert"
	if alert.NodeID != "" {
		title = "New Alert from " + alert.NodeID
	}

	variant := VariantDefault
	if alert.Type == SeverityError {
		variant = VariantDestructive
	}

	return NewNotification(title, alert.Message, variant, false, now)
}
