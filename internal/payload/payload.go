package payload

// Lookup descends through a decoded webhook payload following path steps.
// A step is either a string (map key) or an int (slice index). Any missing
// key, out-of-range index, or wrong-shape node along the way yields an
// absent Value; lookups never panic on malformed payloads. A JSON null is
// treated as absent, matching how senders encode not-applicable fields
// such as a push's base_ref.
func Lookup(m map[string]interface{}, path ...interface{}) Value {
	var current interface{} = m
	for _, step := range path {
		switch key := step.(type) {
		case string:
			node, ok := current.(map[string]interface{})
			if !ok {
				return Value{}
			}
			next, ok := node[key]
			if !ok {
				return Value{}
			}
			current = next
		case int:
			node, ok := current.([]interface{})
			if !ok || key < 0 || key >= len(node) {
				return Value{}
			}
			current = node[key]
		default:
			return Value{}
		}
	}
	if current == nil {
		return Value{}
	}
	return Value{raw: current, present: true}
}

// Value carries either the value reached by a Lookup or an explicit
// absent marker. Accessors return zero values when absent or when the
// underlying value has a different type.
type Value struct {
	raw     interface{}
	present bool
}

func (v Value) Present() bool {
	return v.present
}

func (v Value) Str() string {
	s, _ := v.raw.(string)
	return s
}

func (v Value) Bool() bool {
	b, _ := v.raw.(bool)
	return b
}

// Int handles the float64 that encoding/json produces for numbers.
func (v Value) Int() int {
	switch n := v.raw.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

// Maps returns the value as a sequence of mappings, skipping entries of
// any other shape. Used for the commits list in push payloads.
func (v Value) Maps() []map[string]interface{} {
	seq, ok := v.raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(seq))
	for _, entry := range seq {
		if m, ok := entry.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}
