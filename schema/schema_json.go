package schema

import (
	"bytes"
	"slices"

	json "github.com/goccy/go-json"
)

// MarshalJSON implements custom JSON marshaling for Schema.
// Extensions are flattened into the top-level object, since they are kept in
// a separate map on the Go side.
func (s *Schema) MarshalJSON() ([]byte, error) {
	type alias Schema
	base, err := json.Marshal((*alias)(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extensions) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(s.Extensions))
	for k := range s.Extensions {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	needComma := len(base) > 2
	for _, k := range keys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.Extensions[k])
		if err != nil {
			return nil, err
		}
		if needComma {
			buf.WriteByte(',')
		}
		needComma = true
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
