package contract

// Attributes is declarative metadata attached to a member or parameter,
// typically collected from struct tags. Unset pointer fields mean "no
// constraint".
type Attributes struct {
	Required bool

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MultipleOf       *float64

	// MinLength and MaxLength bound string length or collection size,
	// depending on the schema they are applied to.
	MinLength   *int
	MaxLength   *int
	UniqueItems bool

	Pattern string

	// Default holds a typed default value. DefaultText holds the raw literal
	// from a tag; it is converted using the member's contract.
	Default     any
	DefaultText string
	HasDefault  bool

	// DataType is a semantic format hint such as "email" or "password".
	DataType string

	// Enum restricts the value to the listed literals.
	Enum []string

	Description string
	Title       string
	Example     any

	ReadOnly   bool
	WriteOnly  bool
	Deprecated bool
	Nullable   *bool
}

// IsZero reports whether no attribute is set.
func (a *Attributes) IsZero() bool {
	return !a.Required && a.Minimum == nil && a.Maximum == nil &&
		!a.ExclusiveMinimum && !a.ExclusiveMaximum && a.MultipleOf == nil &&
		a.MinLength == nil && a.MaxLength == nil && !a.UniqueItems &&
		a.Pattern == "" && !a.HasDefault && a.DataType == "" && len(a.Enum) == 0 &&
		a.Description == "" && a.Title == "" && a.Example == nil &&
		!a.ReadOnly && !a.WriteOnly && !a.Deprecated && a.Nullable == nil
}

// Merge copies every attribute set in other onto a. Flags are ORed.
func (a *Attributes) Merge(other Attributes) {
	a.Required = a.Required || other.Required
	if other.Minimum != nil {
		a.Minimum = other.Minimum
		a.ExclusiveMinimum = other.ExclusiveMinimum
	}
	if other.Maximum != nil {
		a.Maximum = other.Maximum
		a.ExclusiveMaximum = other.ExclusiveMaximum
	}
	if other.MultipleOf != nil {
		a.MultipleOf = other.MultipleOf
	}
	if other.MinLength != nil {
		a.MinLength = other.MinLength
	}
	if other.MaxLength != nil {
		a.MaxLength = other.MaxLength
	}
	a.UniqueItems = a.UniqueItems || other.UniqueItems
	if other.Pattern != "" {
		a.Pattern = other.Pattern
	}
	if other.HasDefault {
		a.Default = other.Default
		a.DefaultText = other.DefaultText
		a.HasDefault = true
	}
	if other.DataType != "" {
		a.DataType = other.DataType
	}
	if len(other.Enum) > 0 {
		a.Enum = other.Enum
	}
	if other.Description != "" {
		a.Description = other.Description
	}
	if other.Title != "" {
		a.Title = other.Title
	}
	if other.Example != nil {
		a.Example = other.Example
	}
	a.ReadOnly = a.ReadOnly || other.ReadOnly
	a.WriteOnly = a.WriteOnly || other.WriteOnly
	a.Deprecated = a.Deprecated || other.Deprecated
	if other.Nullable != nil {
		a.Nullable = other.Nullable
	}
}
