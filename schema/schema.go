package schema

import "slices"

// Kind is the JSON type a schema constrains values to.
type Kind string

const (
	// KindOpen places no type constraint on the value.
	KindOpen Kind = ""
	// KindInteger is a JSON number without a fractional part.
	KindInteger Kind = "integer"
	// KindNumber is any JSON number.
	KindNumber Kind = "number"
	// KindString is a JSON string.
	KindString Kind = "string"
	// KindBoolean is a JSON boolean.
	KindBoolean Kind = "boolean"
	// KindObject is a JSON object.
	KindObject Kind = "object"
	// KindArray is a JSON array.
	KindArray Kind = "array"
	// KindNull is the JSON null literal.
	KindNull Kind = "null"
)

// Schema is a node in the generated schema graph.
//
// A schema with Ref set is a reference node: it stands in for a schema stored
// under an identifier and carries no shape of its own.
type Schema struct {
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Example     any    `yaml:"example,omitempty" json:"example,omitempty"`

	// Type validation
	Type   Kind   `yaml:"type,omitempty" json:"type,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Enum   []any  `yaml:"enum,omitempty" json:"enum,omitempty"`

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum bool     `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"`
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum bool     `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"`

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Array validation
	Items       *Schema `yaml:"items,omitempty" json:"items,omitempty"`
	MaxItems    *int    `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems    *int    `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems bool    `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`

	// Object validation
	Properties           *Properties `yaml:"properties,omitempty" json:"properties,omitempty"`
	AdditionalProperties any         `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // *Schema or bool
	Required             []string    `yaml:"required,omitempty" json:"required,omitempty"`

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`

	Discriminator *Discriminator `yaml:"discriminator,omitempty" json:"discriminator,omitempty"`

	Nullable   bool `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	ReadOnly   bool `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly  bool `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`
	Deprecated bool `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Extensions captures vendor extensions (keys starting with "x-").
	Extensions map[string]any `yaml:",inline" json:"-"`
}

// Discriminator names the property whose value selects a subtype schema.
type Discriminator struct {
	PropertyName string            `yaml:"propertyName" json:"propertyName"`
	Mapping      map[string]string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
}

// IsRef reports whether s is a reference node.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// SetProperty adds or replaces a named property, allocating the property map
// on first use.
func (s *Schema) SetProperty(name string, prop *Schema) {
	if s.Properties == nil {
		s.Properties = NewProperties()
	}
	s.Properties.Set(name, prop)
}

// Property returns the named property schema, or nil.
func (s *Schema) Property(name string) *Schema {
	if s == nil {
		return nil
	}
	p, _ := s.Properties.Get(name)
	return p
}

// AddRequired adds names to the required set, skipping names already present.
func (s *Schema) AddRequired(names ...string) {
	for _, name := range names {
		if !slices.Contains(s.Required, name) {
			s.Required = append(s.Required, name)
		}
	}
}

// IsRequired reports whether name is in the required set.
func (s *Schema) IsRequired(name string) bool {
	return s != nil && slices.Contains(s.Required, name)
}

// AdditionalPropertiesSchema returns AdditionalProperties when it holds a schema.
func (s *Schema) AdditionalPropertiesSchema() *Schema {
	if s == nil {
		return nil
	}
	sub, _ := s.AdditionalProperties.(*Schema)
	return sub
}

// SetExtension sets a vendor extension. The "x-" prefix is added when missing.
func (s *Schema) SetExtension(key string, value any) {
	if len(key) < 2 || key[:2] != "x-" {
		key = "x-" + key
	}
	if s.Extensions == nil {
		s.Extensions = make(map[string]any)
	}
	s.Extensions[key] = value
}
