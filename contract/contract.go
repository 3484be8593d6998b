package contract

import (
	"reflect"
)

// Kind is the shape category a contract describes.
type Kind int

const (
	// KindOpen is a fully dynamic value with no known shape.
	KindOpen Kind = iota
	// KindPrimitive is a scalar described by a DataType.
	KindPrimitive
	// KindEnum is a closed set of named values.
	KindEnum
	// KindDictionary is a keyed map.
	KindDictionary
	// KindArray is an ordered sequence.
	KindArray
	// KindObject is a structured object with named members.
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEnum:
		return "enum"
	case KindDictionary:
		return "dictionary"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "open"
	}
}

// DataType identifies a primitive's serialized representation.
type DataType int

const (
	DataTypeUnknown DataType = iota
	DataTypeString
	DataTypeBoolean
	DataTypeInt32
	DataTypeInt64
	DataTypeFloat
	DataTypeDouble
	DataTypeDecimal
	DataTypeByte
	DataTypeBinary
	DataTypeDate
	DataTypeDateTime
	DataTypeUUID
	DataTypeURI
	DataTypeDuration
)

var dataTypeNames = map[DataType]string{
	DataTypeUnknown:  "unknown",
	DataTypeString:   "string",
	DataTypeBoolean:  "boolean",
	DataTypeInt32:    "int32",
	DataTypeInt64:    "int64",
	DataTypeFloat:    "float",
	DataTypeDouble:   "double",
	DataTypeDecimal:  "decimal",
	DataTypeByte:     "byte",
	DataTypeBinary:   "binary",
	DataTypeDate:     "date",
	DataTypeDateTime: "date-time",
	DataTypeUUID:     "uuid",
	DataTypeURI:      "uri",
	DataTypeDuration: "duration",
}

// String returns the data type name.
func (d DataType) String() string {
	if name, ok := dataTypeNames[d]; ok {
		return name
	}
	return "unknown"
}

// Contract is the resolved description of a type's serialized shape.
// Contracts are immutable once returned by a Resolver.
type Contract struct {
	// Type is the described type. For pointer types this is the element type,
	// so *T and T share schema identity.
	Type reflect.Type
	Kind Kind
	Name TypeName

	// Nullable is set when the requested type was a pointer.
	Nullable bool

	// DataType is set for KindPrimitive.
	DataType DataType

	// Enum is set for KindEnum.
	Enum *EnumContract

	// Key and Elem are set for KindDictionary (both) and KindArray (Elem).
	Key  reflect.Type
	Elem reflect.Type

	// UniqueItems marks set-like arrays.
	UniqueItems bool

	// Members, Base and SubTypes are set for KindObject.
	Members  []Member
	Base     reflect.Type
	SubTypes []reflect.Type

	Deprecated  bool
	Description string
}

// DeclaredMembers returns the members not inherited through Base.
func (c *Contract) DeclaredMembers() []Member {
	var out []Member
	for _, m := range c.Members {
		if !m.Inherited {
			out = append(out, m)
		}
	}
	return out
}

// Member returns the member serialized under name.
func (c *Contract) Member(name string) (Member, bool) {
	for _, m := range c.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Member is a serialized member of an object contract.
type Member struct {
	// Name is the serialized property name.
	Name string
	// FieldName is the Go struct field name.
	FieldName string
	// Type is the member's declared type, including any pointer.
	Type reflect.Type
	// DeclaringType is the struct that declares the field.
	DeclaringType reflect.Type

	// Inherited marks members reached through the contract's Base.
	Inherited bool
	// Ignored members are part of the Go type but never serialized.
	Ignored bool
	// Required is set when the contract itself requires the member.
	Required bool
	// Nullable is set for pointer members.
	Nullable bool
	// Deprecated marks obsolete members.
	Deprecated bool
	// ReadOnly and WriteOnly restrict the member to responses or requests.
	ReadOnly  bool
	WriteOnly bool
	// StringEncoded is set by the json ",string" option.
	StringEncoded bool

	Attributes Attributes
}

// Parameter describes an operation parameter whose schema is generated from
// its type. Hosts build parameters from their routing metadata.
type Parameter struct {
	Name       string
	Type       reflect.Type
	Required   bool
	Attributes Attributes
}

// EnumContract describes the members of an enum type.
type EnumContract struct {
	Members []EnumMember
	// Underlying is DataTypeInt32, DataTypeInt64 or DataTypeString.
	Underlying DataType
	// TextConverter is set when the enum serializes itself as text
	// (it implements encoding.TextMarshaler).
	TextConverter bool
}

// EnumMember is a named enum value. Value is normalized to int64 for integer
// enums and string for string enums.
type EnumMember struct {
	Name  string
	Value any
}

// Enumer is implemented by types that enumerate their members.
type Enumer interface {
	EnumMembers() []EnumMember
}

// SubTyper is implemented by polymorphic base types. SubTypes returns a zero
// value of each known subtype.
type SubTyper interface {
	SubTypes() []any
}

// Describer is implemented by types that document themselves.
type Describer interface {
	SchemaDescription() string
}

// Obsoleter is implemented by types that may be marked deprecated.
type Obsoleter interface {
	SchemaDeprecated() bool
}

// Resolver produces contracts for types.
type Resolver interface {
	Resolve(t reflect.Type) (*Contract, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(t reflect.Type) (*Contract, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(t reflect.Type) (*Contract, error) {
	return f(t)
}
