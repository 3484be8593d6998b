// Package contract describes the serialized shape of Go types.
//
// Import path: github.com/erraggy/oastypes/contract
//
// A [Contract] is computed once per type by a [Resolver] and tells the schema
// generator everything it needs: which shape category applies, which members an
// object serializes, how they are named, which are required or ignored, and what
// declarative validation metadata ([Attributes]) each member carries. The
// generator never inspects reflect metadata on its own; it only reads contracts,
// so alternative resolvers (for example one backed by a different serializer)
// can be plugged in.
//
// # Reflection Resolver
//
// [ReflectResolver] follows encoding/json semantics and reads struct tags:
//
//	type OrderLine struct {
//	    SKU      string  `json:"sku" validate:"required,min=3"`
//	    Qty      int     `json:"qty" validate:"gte=1,lte=100"`
//	    Note     *string `json:"note,omitempty" oas:"description=Free text"`
//	    Internal string  `json:"-"`
//	    Legacy   string  `json:"legacy,omitempty" deprecated:"use note"`
//	    Discount float64 `json:"discount" default:"0"`
//	}
//
// Supported tags:
//   - json: member name, omitempty, "-" (ignored member), ",string"
//   - oas: description, title, format, enum (pipe separated), minimum, maximum,
//     exclusiveMinimum, exclusiveMaximum, multipleOf, minLength, maxLength,
//     minItems, maxItems, uniqueItems, pattern, default, example, readOnly,
//     writeOnly, nullable, deprecated, required, inline
//   - validate: the go-playground/validator syntax for required, min, max, len,
//     gt, gte, lt, lte, oneof, unique and format validators such as email or uuid
//   - default: a default value literal
//   - deprecated: marks the member obsolete
//
// # Enums and Subtypes
//
// Go has no enum or subclass declarations, so both are opt-in. A type declares
// its enum members by implementing [Enumer] or by registration with
// [ReflectResolver.RegisterEnum]. Polymorphic bases list their subtypes by implementing [SubTyper]
// or by registration with [ReflectResolver.RegisterSubTypes]. A struct's first embedded struct field
// is its base type, unless tagged oas:"inline".
package contract
