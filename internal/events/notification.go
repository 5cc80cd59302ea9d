package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification is one rendered webhook delivery: the event kind, the
// repository it concerns, and the ordered IRC lines produced for it.
// The first line is always the summary; any further lines are details.
type Notification struct {
	ID         string   `json:"id"`
	DeliveryID string   `json:"delivery_id,omitempty"`
	Kind       string   `json:"kind"`
	Repo       string   `json:"repo,omitempty"`
	Lines      []string `json:"lines"`
	ReceivedAt string   `json:"received_at"`
}

// NewNotification creates a notification with a generated ID and the
// current timestamp.
func NewNotification(kind string, lines []string) *Notification {
	return &Notification{
		ID:         uuid.New().String(),
		Kind:       kind,
		Lines:      lines,
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Validate checks the notification before it is queued or stored.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("id is required")
	}
	if _, err := uuid.Parse(n.ID); err != nil {
		return fmt.Errorf("invalid id format: %w", err)
	}
	if n.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if len(n.Lines) == 0 {
		return fmt.Errorf("at least one line is required")
	}
	if n.ReceivedAt == "" {
		return fmt.Errorf("received_at is required")
	}
	if _, err := time.Parse(time.RFC3339, n.ReceivedAt); err != nil {
		return fmt.Errorf("invalid received_at format (expected RFC3339): %w", err)
	}
	return nil
}

// ToJSON serializes the notification.
func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// FromJSON deserializes a notification.
func FromJSON(data []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	return &n, nil
}

// LinesJSON returns the rendered lines as a JSON string for storage.
func (n *Notification) LinesJSON() (string, error) {
	data, err := json.Marshal(n.Lines)
	if err != nil {
		return "", fmt.Errorf("marshal lines: %w", err)
	}
	return string(data), nil
}
