package schema

import (
	"bytes"
	"iter"
	"slices"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// Properties is an insertion-ordered mapping of property name to schema.
// The zero value is not usable; use NewProperties or Schema.SetProperty.
// Read methods accept a nil receiver.
type Properties struct {
	names  []string
	values map[string]*Schema
}

// NewProperties returns an empty property map.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]*Schema)}
}

// Set adds or replaces a property. Replacing keeps the original position.
func (p *Properties) Set(name string, s *Schema) {
	if _, exists := p.values[name]; !exists {
		p.names = append(p.names, name)
	}
	p.values[name] = s
}

// Get returns the named property.
func (p *Properties) Get(name string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.values[name]
	return s, ok
}

// Delete removes the named property if present.
func (p *Properties) Delete(name string) {
	if p == nil {
		return
	}
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	p.names = slices.DeleteFunc(p.names, func(n string) bool { return n == name })
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// Names returns the property names in insertion order.
func (p *Properties) Names() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.names)
}

// All iterates over properties in insertion order.
func (p *Properties) All() iter.Seq2[string, *Schema] {
	return func(yield func(string, *Schema) bool) {
		if p == nil {
			return
		}
		for _, name := range p.names {
			if !yield(name, p.values[name]) {
				return
			}
		}
	}
}

// MarshalJSON writes the properties as a JSON object in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order of the input.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	p.names = nil
	p.values = make(map[string]*Schema)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var s Schema
		if err := dec.Decode(&s); err != nil {
			return err
		}
		p.Set(name, &s)
	}
	_, err := dec.Token()
	return err
}

// MarshalYAML writes the properties as a YAML mapping in insertion order.
func (p *Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range p.names {
		var val yaml.Node
		if err := val.Encode(p.values[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&val,
		)
	}
	return node, nil
}

// IsZero reports whether there are no properties, for omitempty handling.
func (p *Properties) IsZero() bool {
	return p.Len() == 0
}
