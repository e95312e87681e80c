package tools

import "encoding/json"

// RuntimeContext carries the per-invocation data the host runtime supplies:
// credentials and variables. It replaces any ambient process-wide state; every
// handler receives it explicitly.
type RuntimeContext struct {
	Secrets map[string]string
	Vars    map[string]any
}

func (rc RuntimeContext) Secret(name string) string {
	return rc.Secrets[name]
}

// IntVar reads a numeric variable. JSON-decoded vars arrive as float64, so
// both forms are accepted.
func (rc RuntimeContext) IntVar(name string) (int, bool) {
	v, ok := rc.Vars[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func (rc RuntimeContext) StringVar(name string) (string, bool) {
	s, ok := rc.Vars[name].(string)
	return s, ok
}
