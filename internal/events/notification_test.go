package events

import "testing"

func TestNewNotification(t *testing.T) {
	n := NewNotification("push", []string{"summary", "detail"})

	if n.ID == "" {
		t.Error("ID not generated")
	}
	if n.Kind != "push" {
		t.Errorf("Kind = %q, want push", n.Kind)
	}
	if len(n.Lines) != 2 {
		t.Errorf("Lines length = %d, want 2", len(n.Lines))
	}
	if err := n.Validate(); err != nil {
		t.Errorf("fresh notification invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Notification {
		return NewNotification("push", []string{"summary"})
	}

	tests := []struct {
		name   string
		mutate func(*Notification)
	}{
		{"missing id", func(n *Notification) { n.ID = "" }},
		{"bad id", func(n *Notification) { n.ID = "not-a-uuid" }},
		{"missing kind", func(n *Notification) { n.Kind = "" }},
		{"no lines", func(n *Notification) { n.Lines = nil }},
		{"missing timestamp", func(n *Notification) { n.ReceivedAt = "" }},
		{"bad timestamp", func(n *Notification) { n.ReceivedAt = "yesterday" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid()
			tt.mutate(n)
			if err := n.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	n := NewNotification("pull_request_review_comment", []string{"one line"})
	n.DeliveryID = "delivery-42"
	n.Repo = "example/gitirc"

	data, err := n.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if got.ID != n.ID || got.Kind != n.Kind || got.DeliveryID != n.DeliveryID || got.Repo != n.Repo {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, n)
	}
	if len(got.Lines) != 1 || got.Lines[0] != "one line" {
		t.Errorf("lines mismatch: %v", got.Lines)
	}
}

func TestFromJSONInvalid(t *testing.T) {
	if _, err := FromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
