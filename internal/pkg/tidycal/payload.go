package tidycal

import (
	"bytes"
	"encoding/json"
)

// payloadField is one named value of a request body.
type payloadField struct {
	key   string
	value any
}

// payload is an ordered request body. Marshaling preserves field order, which
// map-based bodies would not.
type payload []payloadField

func (p payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// buildPayload drops fields whose value is undefined (nil) while keeping
// defined falsy values (false, 0, "") as-is.
func buildPayload(fields payload) payload {
	out := make(payload, 0, len(fields))
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

// opt converts an optional pointer field into a payload value: nil pointers
// become undefined, everything else is sent as the pointed-to value.
func opt[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
