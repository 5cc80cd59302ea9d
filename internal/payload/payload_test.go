package payload

import "testing"

func testPayload() map[string]interface{} {
	return map[string]interface{}{
		"ref":    "refs/heads/main",
		"forced": true,
		"repository": map[string]interface{}{
			"name": "gitirc",
			"url":  "https://github.com/example/gitirc",
		},
		"commits": []interface{}{
			map[string]interface{}{
				"id":       "abc123",
				"distinct": true,
			},
			map[string]interface{}{
				"id":       "def456",
				"distinct": false,
			},
			"not-a-commit",
		},
		"size":     2.0,
		"base_ref": nil,
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		path    []interface{}
		present bool
	}{
		{"top-level key", []interface{}{"ref"}, true},
		{"nested key", []interface{}{"repository", "name"}, true},
		{"sequence index", []interface{}{"commits", 0, "id"}, true},
		{"missing top-level key", []interface{}{"pusher"}, false},
		{"null value counts as absent", []interface{}{"base_ref"}, false},
		{"missing nested key", []interface{}{"repository", "owner"}, false},
		{"index out of range", []interface{}{"commits", 9, "id"}, false},
		{"negative index", []interface{}{"commits", -1}, false},

		// Malformed shapes collapse to absent, same as missing.
		{"key into scalar", []interface{}{"ref", "name"}, false},
		{"index into mapping", []interface{}{"repository", 0}, false},
		{"key into sequence", []interface{}{"commits", "id"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Lookup(testPayload(), tt.path...)
			if v.Present() != tt.present {
				t.Errorf("Lookup(%v).Present() = %v, want %v", tt.path, v.Present(), tt.present)
			}
		})
	}
}

func TestValueAccessors(t *testing.T) {
	p := testPayload()

	if got := Lookup(p, "repository", "name").Str(); got != "gitirc" {
		t.Errorf("Str() = %q, want %q", got, "gitirc")
	}
	if !Lookup(p, "forced").Bool() {
		t.Error("Bool() = false, want true")
	}
	if got := Lookup(p, "size").Int(); got != 2 {
		t.Errorf("Int() = %d, want 2", got)
	}

	// Wrong-type access returns zero values, not panics.
	if got := Lookup(p, "forced").Str(); got != "" {
		t.Errorf("Str() on bool = %q, want empty", got)
	}
	if Lookup(p, "ref").Bool() {
		t.Error("Bool() on string = true, want false")
	}
	if got := Lookup(p, "missing").Int(); got != 0 {
		t.Errorf("Int() on absent = %d, want 0", got)
	}
}

func TestValueMaps(t *testing.T) {
	commits := Lookup(testPayload(), "commits").Maps()

	// Non-mapping entries are skipped.
	if len(commits) != 2 {
		t.Fatalf("Maps() returned %d entries, want 2", len(commits))
	}
	if commits[0]["id"] != "abc123" {
		t.Errorf("first commit id = %v, want abc123", commits[0]["id"])
	}

	if got := Lookup(testPayload(), "ref").Maps(); got != nil {
		t.Errorf("Maps() on string = %v, want nil", got)
	}
}

func TestLookupNeverMutates(t *testing.T) {
	p := testPayload()
	Lookup(p, "commits", 0, "id")
	Lookup(p, "repository", "url")

	if len(p) != 6 {
		t.Errorf("payload has %d keys after lookups, want 6", len(p))
	}
	if len(p["commits"].([]interface{})) != 3 {
		t.Error("commits sequence changed length")
	}
}
